package fixtures

const APIKey = "0123456789abcdef0123456789abcdef"
const Environment = "production"
const UserID = "user-1"
const UserEmail = "user-1@example.com"
const FlagName = "new_checkout"

const SingleFlagJson = `{"flag":"new_checkout","enabled":true}`

const FlagsJson = `[
	{"flag":"new_checkout","enabled":true},
	{"flag":"dark_mode","enabled":false}
]`
