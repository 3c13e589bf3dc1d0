package domain

// Collection is the Firestore collection holding notifications.
const Collection = "notifications"

// Notification is one entry of a physiotherapist's feed.
type Notification struct {
	RecipientID string `firestore:"recipientId" json:"recipientId"`
	Message     string `firestore:"message" json:"message"`
	Timestamp   string `firestore:"timestamp" json:"timestamp"`
	Read        bool   `firestore:"read" json:"read"`
}
