package backendclient

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/adlink-api/internal/domain"
)

var ErrMissingSessionToken = errors.New("backend não retornou o jwtToken")

type userPayload struct {
	ID             string `json:"id"`
	MongoID        string `json:"_id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Fullname       string `json:"fullname"`
	CompanyType    string `json:"companyType"`
	CompanyName    string `json:"companyName"`
	IndustryName   string `json:"industryName"`
	CompanyWebsite string `json:"companyWebsite"`
	Bio            string `json:"bio"`
	Specialty      string `json:"specialty"`
	PortfolioLink  string `json:"portfolioLink"`
}

func (u *userPayload) toDomain() *domain.User {
	id := u.MongoID
	if id == "" {
		id = u.ID
	}

	name := u.Name
	if name == "" {
		name = u.Fullname
	}

	return &domain.User{
		ID:            id,
		Email:         u.Email,
		Name:          name,
		Role:          domain.RoleFromCompanyType(u.CompanyType),
		CompanyName:   u.CompanyName,
		Industry:      u.IndustryName,
		Website:       u.CompanyWebsite,
		Bio:           u.Bio,
		Specialty:     u.Specialty,
		PortfolioLink: u.PortfolioLink,
	}
}

type sessionResponse struct {
	JWTToken string       `json:"jwtToken"`
	User     *userPayload `json:"user"`
}

func (c *BackendClient) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	body, err := c.do(ctx, request{
		op:       "login",
		method:   http.MethodPost,
		resource: "/auth/login",
		public:   true,
		payload: map[string]string{
			"email":    email,
			"password": password,
		},
	})
	if err != nil {
		return nil, err
	}

	return decodeSession("login", body)
}

// Register cria apenas o usuário. A empresa é criada depois com CreateBusinessInfo.
func (c *BackendClient) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.Session, error) {
	body, err := c.do(ctx, request{
		op:       "signup",
		method:   http.MethodPost,
		resource: "/auth/signup",
		public:   true,
		payload: map[string]string{
			"fullname": req.Name,
			"email":    req.Email,
			"password": req.Password,
		},
	})
	if err != nil {
		return nil, err
	}

	session, err := decodeSession("signup", body)
	if err != nil {
		return nil, err
	}

	// O signup não devolve os dados da empresa
	if session.User.Email == "" {
		session.User.Email = req.Email
	}
	if session.User.Name == "" {
		session.User.Name = req.Name
	}
	session.User.Role = req.Role
	session.User.CompanyName = req.CompanyName
	session.User.Industry = req.Industry
	session.User.Website = req.Website

	return session, nil
}

func decodeSession(op string, body []byte) (*domain.Session, error) {
	var resp sessionResponse
	if err := decode(op, unwrapData(body), &resp); err != nil {
		return nil, err
	}

	if resp.JWTToken == "" {
		return nil, ErrMissingSessionToken
	}

	user := &domain.User{}
	if resp.User != nil {
		user = resp.User.toDomain()
	}

	return &domain.Session{
		Token: resp.JWTToken,
		User:  user,
	}, nil
}

func (c *BackendClient) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	body, err := c.do(ctx, request{
		op:       "profile",
		method:   http.MethodGet,
		resource: "/auth/profile",
		token:    token,
	})
	if err != nil {
		return nil, err
	}

	return decodeUser("profile", body)
}

func (c *BackendClient) UpdateProfile(ctx context.Context, token string, req *domain.UpdateProfileRequest) (*domain.User, error) {
	payload := map[string]*string{
		"name":           req.Name,
		"companyName":    req.CompanyName,
		"industryName":   req.Industry,
		"companyWebsite": req.Website,
		"bio":            req.Bio,
		"specialty":      req.Specialty,
		"portfolioLink":  req.PortfolioLink,
	}
	for key, value := range payload {
		if value == nil {
			delete(payload, key)
		}
	}

	body, err := c.do(ctx, request{
		op:       "update-profile",
		method:   http.MethodPut,
		resource: "/auth/update-profile",
		token:    token,
		payload:  payload,
	})
	if err != nil {
		return nil, err
	}

	return decodeUser("update-profile", body)
}

// decodeUser aceita {data: user}, {user: user} ou o usuário puro
func decodeUser(op string, body []byte) (*domain.User, error) {
	raw := unwrapData(body)

	var wrapper map[string]jsoniter.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err == nil {
		if inner, ok := wrapper["user"]; ok && !isNull(inner) {
			raw = inner
		}
	}

	var payload userPayload
	if err := decode(op, raw, &payload); err != nil {
		return nil, err
	}

	return payload.toDomain(), nil
}
