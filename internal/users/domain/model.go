package domain

// Collection names of the two profile collections. An identity appears in at
// most one of them.
const (
	CollectionPhysios = "fisioterapeutas"
	CollectionUsers   = "usuarios"
)

// User types accepted at registration.
const (
	TypePhysio = "physio"
	TypeBasic  = "basic"
)

// PhysioProfile is the document written for a physiotherapist account. The
// patients field is a denormalized index → snapshot map maintained by the
// patients feature.
type PhysioProfile struct {
	Nombre    string `firestore:"nombre" json:"nombre"`
	Email     string `firestore:"email" json:"email"`
	UserType  string `firestore:"userType" json:"userType"`
	CreatedAt string `firestore:"createdAt" json:"createdAt"`
}

// BasicProfile is the document written for a patient account.
type BasicProfile struct {
	Nombre      string `firestore:"nombre" json:"nombre"`
	Email       string `firestore:"email" json:"email"`
	UserType    string `firestore:"userType" json:"userType"`
	CreatedAt   string `firestore:"createdAt" json:"createdAt"`
	HasSessions bool   `firestore:"hasSessions" json:"hasSessions"`
}

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Nombre   string `json:"nombre"`
	UserType string `json:"userType"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
