package auth

import "github.com/golang-jwt/jwt/v5"

// mintToken signs an HS256 access token for the credential. Callers
// treat tokens as opaque; claims exist so the embedding application can
// decode who a token belongs to.
func (s *Service) mintToken(userID, email, role string) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"role":  role,
		"jti":   s.newID(),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}
