package models

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the verified principal carried by a bearer token. AuthTime
// is the unix time of the interactive login that produced the token; the
// reset-PIN flow requires it to be recent. IsAdmin here is advisory only -
// admin operations always re-check the stored Account record.
type UserClaims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"user_id"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
	AuthTime int64  `json:"auth_time"`
}
