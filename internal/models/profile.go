package models

// Profile is either a signing profile (has_private_key) or a contact profile.
type Profile struct {
	ProfileID             int64  `cbor:"1,keyasint,omitempty" json:"profile_id"`
	ProfileName           string `cbor:"2,keyasint,omitempty" json:"profile_name"`
	HasPrivateKey         bool   `cbor:"3,keyasint,omitempty" json:"has_private_key"`
	Pubkey                string `cbor:"4,keyasint,omitempty" json:"pubkey"`
	Following             bool   `cbor:"5,keyasint,omitempty" json:"following"`
	ProfileImage          string `cbor:"6,keyasint,omitempty" json:"profile_image,omitempty"`
	HasCustomProfileImage bool   `cbor:"7,keyasint,omitempty" json:"has_custom_profile_image"`
}

// TwitterAccount forwards tweets of Handle as squeaks signed by Profile.
type TwitterAccount struct {
	TwitterAccountID int64    `cbor:"1,keyasint,omitempty" json:"twitter_account_id"`
	Handle           string   `cbor:"2,keyasint,omitempty" json:"handle"`
	ProfileID        int64    `cbor:"3,keyasint,omitempty" json:"profile_id"`
	Profile          *Profile `cbor:"4,keyasint,omitempty" json:"profile,omitempty"`
	IsForwarding     bool     `cbor:"5,keyasint,omitempty" json:"is_forwarding"`
}

// SellPrice is the price the node asks for its own squeaks.
type SellPrice struct {
	PriceMsat        int64 `cbor:"1,keyasint,omitempty" json:"price_msat"`
	PriceMsatIsSet   bool  `cbor:"2,keyasint,omitempty" json:"price_msat_is_set"`
	DefaultPriceMsat int64 `cbor:"3,keyasint,omitempty" json:"default_price_msat"`
}

// Effective returns the price in force: the configured one, or the node default.
func (p SellPrice) Effective() int64 {
	if p.PriceMsatIsSet {
		return p.PriceMsat
	}
	return p.DefaultPriceMsat
}
