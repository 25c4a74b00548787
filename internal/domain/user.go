package domain

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type UserRole string

const (
	UserRoleBrand   UserRole = "brand"
	UserRoleCreator UserRole = "creator"
)

// RoleFromCompanyType converte o companyType do backend no papel do usuário
func RoleFromCompanyType(companyType string) UserRole {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(companyType)), "brand") {
		return UserRoleBrand
	}
	return UserRoleCreator
}

func (r UserRole) CompanyType() string {
	if r == UserRoleBrand {
		return "Brand"
	}
	return "Creator"
}

func (r UserRole) IsValid() bool {
	return r == UserRoleBrand || r == UserRoleCreator
}

type User struct {
	ID            string   `json:"id"`
	Email         string   `json:"email"`
	Name          string   `json:"name"`
	Role          UserRole `json:"role"`
	CompanyName   string   `json:"company_name,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	Website       string   `json:"website,omitempty"`
	Bio           string   `json:"bio,omitempty"`
	Specialty     string   `json:"specialty,omitempty"`
	PortfolioLink string   `json:"portfolio_link,omitempty"`
}

type RegisterRequest struct {
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Name        string   `json:"name"`
	Role        UserRole `json:"role"`
	CompanyName string   `json:"company_name"`
	Industry    string   `json:"industry"`
	Website     string   `json:"website"`
}

type UpdateProfileRequest struct {
	Name          *string `json:"name,omitempty"`
	CompanyName   *string `json:"company_name,omitempty"`
	Industry      *string `json:"industry,omitempty"`
	Website       *string `json:"website,omitempty"`
	Bio           *string `json:"bio,omitempty"`
	Specialty     *string `json:"specialty,omitempty"`
	PortfolioLink *string `json:"portfolio_link,omitempty"`
}

// Session é o resultado de um login ou cadastro no backend
type Session struct {
	Token string
	User  *User
}

type Claims struct {
	UserID    string
	UserName  string
	UserEmail string
	UserRole  UserRole
	jwt.RegisteredClaims
}
