package powerschool

import (
	"crypto/hmac"
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"strings"
)

func hmacMD5(key, data string) string {
	mac := hmac.New(md5.New, []byte(key))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// DeriveLoginFields computes the two hashed password fields a legacy
// login form expects. The portal supports two independent hash schemes
// for the same password so both fields must be submitted.
//
//	dbpw = HMAC-MD5(key=contextData, lowercase(password))
//	pw   = HMAC-MD5(key=contextData, base64(MD5(password)) without '=' padding)
func DeriveLoginFields(contextData, password string) (dbpwField, pwField string) {
	dbpwField = hmacMD5(contextData, strings.ToLower(password))

	sum := md5.Sum([]byte(password))
	b64 := strings.ReplaceAll(base64.StdEncoding.EncodeToString(sum[:]), "=", "")
	pwField = hmacMD5(contextData, b64)

	return dbpwField, pwField
}
