package apitest

import "github.com/fastygo/trucar/domain"

// User returns a customer of an organization in sector.
func User(id int, sector domain.Sector) *domain.User {
	return &domain.User{
		ID:       id,
		Email:    "user@trucar.test",
		FullName: "Ana Souza",
		Role:     domain.RoleActiveCustomer,
		IsActive: true,
		Organization: &domain.Organization{
			ID:         10,
			Name:       "Fazenda Boa Vista",
			Sector:     sector,
			PlanStatus: domain.PlanActive,
		},
	}
}

// Admin returns a superuser.
func Admin(id int) *domain.User {
	u := User(id, domain.SectorServices)
	u.Email = "admin@trucar.test"
	u.FullName = "Admin"
	u.IsSuperuser = true
	return u
}

// Driver returns a driver of an organization in sector.
func Driver(id int, sector domain.Sector) *domain.User {
	u := User(id, sector)
	u.Email = "driver@trucar.test"
	u.FullName = "Carlos Lima"
	u.Role = domain.RoleDriver
	return u
}

// TokenBody is a /login/token response in the nested shape.
func TokenBody(token string, user *domain.User) map[string]any {
	return map[string]any{
		"token": map[string]string{"access_token": token, "token_type": "bearer"},
		"user":  user,
	}
}
