package constants

const USER_AGENT = "swgoh-api-swgohgg/0.1.0 (+https://github.com/AllMightySauron/swgoh-api-swgohgg)"
