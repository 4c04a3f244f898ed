package configs

// Auth configures bearer-token verification.
type Auth struct {
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`
	// Issuer, when set, must match the token's iss claim.
	Issuer string `env:"ISSUER"`
}
