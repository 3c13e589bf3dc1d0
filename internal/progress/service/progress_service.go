package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/recovglox/recovglox-backend/internal/glove"
	patientsdomain "github.com/recovglox/recovglox-backend/internal/patients/domain"
)

// Series is one chart series of the progress payload, one value per finger in
// canonical order.
type Series struct {
	Name  string    `json:"name"`
	Data  []float64 `json:"data"`
	YAxis string    `json:"yAxis"`
}

// ProgressData is the payload of GET /progress/:userId.
type ProgressData struct {
	Categories   []string `json:"categories"`
	Series       []Series `json:"series"`
	Subtitle     string   `json:"subtitle"`
	SessionCount int      `json:"sessionCount,omitempty"`
}

// UserStore resolves a basic user profile by uid.
type UserStore interface {
	GetBasicProfile(ctx context.Context, uid string) (map[string]interface{}, error)
}

// AccessStore covers the ownership checks when a physioId is supplied.
type AccessStore interface {
	GetPhysioDoc(ctx context.Context, uid string) (map[string]interface{}, error)
	GetPatient(ctx context.Context, email string) (*patientsdomain.Patient, error)
}

// ProgressService finds the latest populated session of a user and shapes it
// into chart-ready series.
type ProgressService struct {
	users    UserStore
	access   AccessStore
	sessions glove.SessionSource
}

func NewProgressService(users UserStore, access AccessStore, sessions glove.SessionSource) *ProgressService {
	return &ProgressService{users: users, access: access, sessions: sessions}
}

// Progress returns the latest-session series for a user. physioID is
// optional; when given, the physiotherapist must own the patient record
// keyed by the user's email.
func (s *ProgressService) Progress(ctx context.Context, userID, physioID string) (*ProgressData, error) {
	profile, err := s.users.GetBasicProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if physioID != "" {
		if err := s.authorize(ctx, profile, physioID); err != nil {
			return nil, err
		}
	}

	latest, index, ok, err := glove.LatestActive(ctx, s.sessions, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return emptyPayload(), nil
	}

	docs, err := s.sessions.SessionDocs(ctx, userID, latest)
	if err != nil {
		return nil, err
	}

	data := buildPayload(docs)
	data.SessionCount = index + 1
	return data, nil
}

func (s *ProgressService) authorize(ctx context.Context, profile map[string]interface{}, physioID string) error {
	if _, err := s.access.GetPhysioDoc(ctx, physioID); err != nil {
		return err
	}

	email, _ := profile["email"].(string)
	patient, err := s.access.GetPatient(ctx, email)
	if err != nil {
		return err
	}
	if patient == nil || patient.PhysioID != physioID {
		return patientsdomain.ErrNotOwner
	}
	return nil
}

func buildPayload(docs []glove.Doc) *ProgressData {
	readings := make(map[string]glove.Reading, len(docs))
	for _, doc := range docs {
		readings[doc.ID] = glove.ReadingFromDoc(doc.Data)
	}

	angles := make([]float64, len(glove.Fingers))
	forces := make([]float64, len(glove.Fingers))
	servoForces := make([]float64, len(glove.Fingers))
	velocities := make([]float64, len(glove.Fingers))
	for i, finger := range glove.Fingers {
		r := readings[finger]
		angles[i] = r.Angle
		forces[i] = r.Force
		servoForces[i] = r.ServoForce
		velocities[i] = r.Velocity
	}

	maxIdx := 0
	for i, a := range angles {
		if a > angles[maxIdx] {
			maxIdx = i
		}
	}
	maxFinger := glove.SpanishName(glove.Fingers[maxIdx])
	maxAngle := strconv.FormatFloat(angles[maxIdx], 'f', -1, 64)

	return &ProgressData{
		Categories: glove.Categories(),
		Series: []Series{
			{Name: "Ángulo del Dedo", Data: angles, YAxis: "angle"},
			{Name: "Fuerza", Data: forces, YAxis: "force"},
			{Name: "Fuerza Servo", Data: servoForces, YAxis: "servoforce"},
			{Name: "Velocidad", Data: velocities, YAxis: "velocity"},
		},
		Subtitle: fmt.Sprintf("Datos de la última sesión | Mayor flexión: %s (%s°)", maxFinger, maxAngle),
	}
}

func emptyPayload() *ProgressData {
	return &ProgressData{
		Categories: glove.Categories(),
		Series: []Series{
			{Name: "Ángulo del Dedo", Data: []float64{}, YAxis: "angle"},
			{Name: "Fuerza", Data: []float64{}, YAxis: "force"},
			{Name: "Fuerza Servo", Data: []float64{}, YAxis: "servoforce"},
			{Name: "Velocidad", Data: []float64{}, YAxis: "velocity"},
		},
		Subtitle: "Aún no hay datos registrados para este usuario.",
	}
}
