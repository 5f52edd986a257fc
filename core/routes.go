package core

// Routes holds the backend path for each identity operation, all relative to
// the backend base URL. Every path is individually overridable; empty fields
// fall back to the defaults.
type Routes struct {
	CreateUser       string
	UpdateUser       string
	DeleteUser       string
	GetUser          string
	GetUserByEmail   string
	GetUserByAccount string

	LinkAccount   string
	UnlinkAccount string

	CreateSession     string
	UpdateSession     string
	DeleteSession     string
	GetSessionAndUser string

	CreateVerificationToken string
	UseVerificationToken    string

	CreateCredentials string
	VerifyCredentials string
}

func DefaultRoutes() Routes {
	return Routes{
		CreateUser:       "/users",
		UpdateUser:       "/users",
		DeleteUser:       "/users",
		GetUser:          "/users",
		GetUserByEmail:   "/users/emails",
		GetUserByAccount: "/users/accounts",

		LinkAccount:   "/users/accounts",
		UnlinkAccount: "/users/accounts",

		CreateSession:     "/users/sessions",
		UpdateSession:     "/users/sessions",
		DeleteSession:     "/users/sessions",
		GetSessionAndUser: "/users/sessions",

		CreateVerificationToken: "/users/verification",
		UseVerificationToken:    "/users/verification/use",

		CreateCredentials: "/users/credentials",
		VerifyCredentials: "/users/credentials/verify",
	}
}

// WithDefaults returns a copy with every empty field replaced by its default.
func (r Routes) WithDefaults() Routes {
	defaults := DefaultRoutes()
	fill := func(dst *string, fallback string) {
		if *dst == "" {
			*dst = fallback
		}
	}

	fill(&r.CreateUser, defaults.CreateUser)
	fill(&r.UpdateUser, defaults.UpdateUser)
	fill(&r.DeleteUser, defaults.DeleteUser)
	fill(&r.GetUser, defaults.GetUser)
	fill(&r.GetUserByEmail, defaults.GetUserByEmail)
	fill(&r.GetUserByAccount, defaults.GetUserByAccount)
	fill(&r.LinkAccount, defaults.LinkAccount)
	fill(&r.UnlinkAccount, defaults.UnlinkAccount)
	fill(&r.CreateSession, defaults.CreateSession)
	fill(&r.UpdateSession, defaults.UpdateSession)
	fill(&r.DeleteSession, defaults.DeleteSession)
	fill(&r.GetSessionAndUser, defaults.GetSessionAndUser)
	fill(&r.CreateVerificationToken, defaults.CreateVerificationToken)
	fill(&r.UseVerificationToken, defaults.UseVerificationToken)
	fill(&r.CreateCredentials, defaults.CreateCredentials)
	fill(&r.VerifyCredentials, defaults.VerifyCredentials)

	return r
}
