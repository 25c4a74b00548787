package domain

// BusinessInfo é o registro de empresa do backend (/api/info).
// O ID atribuído pelo servidor é o identificador canônico do dono das contas vinculadas.
type BusinessInfo struct {
	ID             string `json:"_id"`
	CompanyName    string `json:"companyName"`
	IndustryName   string `json:"industryName"`
	CompanyWebsite string `json:"companyWebsite"`
	CompanyType    string `json:"companyType"`
}
