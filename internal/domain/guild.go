package domain

type Guild struct {
	Details GuildDetails
	Members []Player
}

type GuildDetails struct {
	ID            string
	Name          string
	MemberCount   int
	GalacticPower int
	Rank          int
	ProfileCount  int
}
