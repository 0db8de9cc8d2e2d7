package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"finsight/internal/reports"
)

// DigestRequestMessage asks the worker to compute a report digest for
// one user. It carries only identifiers; the worker reads the ledger
// itself.
type DigestRequestMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

// NewDigestRequestMessage creates a request for the given user with a
// fresh message id.
func NewDigestRequestMessage(userID string) *DigestRequestMessage {
	return &DigestRequestMessage{
		ID:        uuid.NewString(),
		UserID:    userID,
		Timestamp: time.Now(),
	}
}

func (m *DigestRequestMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DigestRequestMessageFromJSON(data []byte) (*DigestRequestMessage, error) {
	var msg DigestRequestMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DigestReadyMessage carries a computed digest back to whoever asked.
// RequestID echoes the originating request's id.
type DigestReadyMessage struct {
	ID        string                `json:"id"`
	RequestID string                `json:"requestId"`
	UserID    string                `json:"userId"`
	Timestamp time.Time             `json:"timestamp"`
	Digest    *reports.ReportDigest `json:"digest"`
}

// NewDigestReadyMessage wraps a computed digest in a ready event.
func NewDigestReadyMessage(requestID, userID string, digest *reports.ReportDigest) *DigestReadyMessage {
	return &DigestReadyMessage{
		ID:        uuid.NewString(),
		RequestID: requestID,
		UserID:    userID,
		Timestamp: time.Now(),
		Digest:    digest,
	}
}

func (m *DigestReadyMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func DigestReadyMessageFromJSON(data []byte) (*DigestReadyMessage, error) {
	var msg DigestReadyMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
