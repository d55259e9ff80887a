package types

// UserRecord represents a registered account and the banking profile the
// user supplied at registration.
type UserRecord struct {
	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// Salt is the random per-credential value mixed into the password hash.
	// Never exposed in API responses.
	Salt []byte `json:"-" db:"salt"`

	// Hash is the derived digest of salt+password.
	// Never exposed in API responses.
	Hash []byte `json:"-" db:"hash"`

	// Realname is the user's real name.
	Realname string `json:"realname" db:"realname"`

	// Address is the user's postal address.
	Address string `json:"address" db:"address"`

	// AccountNumber is the user's bank account number.
	AccountNumber Integer `json:"accountNumber" db:"accountnumber"`

	// RoutingNumber is the user's bank routing number.
	RoutingNumber Integer `json:"routingNumber" db:"routingnumber"`

	// BankUsername is the user's online-banking login.
	BankUsername string `json:"bankUsername" db:"bankusername"`

	// BankPassword is the user's online-banking password.
	BankPassword string `json:"bankPassword" db:"bankpassword"`
}
