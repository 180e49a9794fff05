package model

// BusinessType steers business-type-specific default rules
// (e.g. Purchase Accounts maps differently for trading vs manufacturing).
type BusinessType string

const (
	BusinessTrading       BusinessType = "trading"
	BusinessManufacturing BusinessType = "manufacturing"
	BusinessServices      BusinessType = "services"
)

// Constitution is the legal form of the audited entity.
type Constitution string

const (
	ConstitutionCompany        Constitution = "company"
	ConstitutionLLP            Constitution = "llp"
	ConstitutionPartnership    Constitution = "partnership"
	ConstitutionProprietorship Constitution = "proprietorship"
	ConstitutionTrust          Constitution = "trust"
	ConstitutionSociety        Constitution = "society"
)

// Context carries the entity parameters a classification run depends on.
type Context struct {
	BusinessType BusinessType
	Constitution Constitution
}

// IsPartnershipLike reports whether capital accounts belong to partners.
func (c Context) IsPartnershipLike() bool {
	return c.Constitution == ConstitutionLLP || c.Constitution == ConstitutionPartnership
}
