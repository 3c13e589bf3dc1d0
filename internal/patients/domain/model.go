package domain

// Firestore collection names owned by the patients feature.
const (
	// CollectionPatients holds patient records keyed by email.
	CollectionPatients = "pacientes"
	// CollectionAllowed holds the invite records a physiotherapist creates
	// before a patient may self-register, keyed by email.
	CollectionAllowed = "usuariosPermitidos"
	// CollectionLinks holds physio-patient join records keyed by
	// "<patientEmail>_<physioId>".
	CollectionLinks = "physio_patients"
)

// PlaceholderName is shown for roster entries whose invite record is gone.
const PlaceholderName = "Paciente no registrado"

// Observation is one free-text note a physiotherapist attaches to a patient.
type Observation struct {
	Text             string `firestore:"text" json:"text"`
	FechaObservacion string `firestore:"fechaObservacion" json:"fechaObservacion"`
	PhysioID         string `firestore:"physioId" json:"physioId"`
}

// Patient is the record keyed by email in CollectionPatients. UserID stays
// nil until the invited person registers.
type Patient struct {
	Nombre        string        `firestore:"nombre" json:"nombre"`
	Email         string        `firestore:"email" json:"email"`
	PhysioID      string        `firestore:"physioId" json:"physioId"`
	UserID        *string       `firestore:"userId" json:"userId"`
	CreatedAt     string        `firestore:"createdAt" json:"createdAt"`
	Observaciones []Observation `firestore:"observaciones" json:"observaciones"`
}

// AllowedUser is the invite record keyed by email in CollectionAllowed.
type AllowedUser struct {
	Nombre        string        `firestore:"nombre" json:"nombre"`
	Email         string        `firestore:"email" json:"email"`
	PhysioID      string        `firestore:"physioId" json:"physioId"`
	Registered    bool          `firestore:"registered" json:"registered"`
	CreatedAt     string        `firestore:"createdAt" json:"createdAt"`
	Observaciones []Observation `firestore:"observaciones" json:"observaciones"`
}

// Link is the join record keyed by "<patientEmail>_<physioId>".
type Link struct {
	PhysioID  string `firestore:"physioId" json:"physioId"`
	PatientID string `firestore:"patientId" json:"patientId"`
	AddedAt   string `firestore:"addedAt" json:"addedAt"`
}

// RosterEntry is the per-patient view model GET /patients returns.
type RosterEntry struct {
	ID            string        `json:"id"`
	Email         string        `json:"email"`
	Nombre        string        `json:"nombre"`
	PhysioID      string        `json:"physioId,omitempty"`
	Registered    bool          `json:"registered"`
	CreatedAt     string        `json:"createdAt,omitempty"`
	HasSessions   bool          `json:"hasSessions"`
	SessionCount  int           `json:"sessionCount"`
	Observaciones []Observation `json:"observaciones"`
	UserID        *string       `json:"userId"`
	IsRegistered  bool          `json:"isRegistered"`
}
