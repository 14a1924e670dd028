package storefront

import "crypto/subtle"

// MsgInvalidCredentials is shown when the admin login fails.
const MsgInvalidCredentials = "Usuário ou senha inválidos."

// CredentialsMatch compares both values in constant time.
func CredentialsMatch(user, pass, wantUser, wantPass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(wantUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(pass), []byte(wantPass)) == 1
	return userOK && passOK
}
