package strutils

import (
	"fmt"
	"strings"
)

const ALLY_CODE_LENGTH = 9

// Strips dashes and spaces, as in "123-456-789", and checks that nine digits remain
func NormalizeAllyCode(allyCode string) (string, error) {
	var normalized strings.Builder
	normalized.Grow(ALLY_CODE_LENGTH)

	for _, char := range allyCode {
		switch {
		case char == '-' || char == ' ':
			continue
		case char >= '0' && char <= '9':
			normalized.WriteRune(char)
		default:
			return "", fmt.Errorf("invalid character in ally code. input: '%s'", allyCode)
		}
	}
	if normalized.Len() != ALLY_CODE_LENGTH {
		return "", fmt.Errorf("normalized ally code has incorrect length. input: '%s'", allyCode)
	}
	return normalized.String(), nil
}

func AllyCodeIsNormalized(allyCode string) bool {
	normalized, err := NormalizeAllyCode(allyCode)
	return err == nil && normalized == allyCode
}

// Guild ids are opaque, but they end up in a URL path
func GuildIDIsValid(guildID string) bool {
	if guildID == "" {
		return false
	}
	for _, char := range guildID {
		isAlnum := (char >= '0' && char <= '9') || (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z')
		if !isAlnum && char != '-' && char != '_' {
			return false
		}
	}
	return true
}
