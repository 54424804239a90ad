package workbench

import (
	"errors"
	"fmt"
	"strings"

	"jobhunt-workbench/internal/domain"
)

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
)

// Notification is a toast emitted toward the rendering layer.
type Notification struct {
	Title   string
	Message string
	Variant Variant
}

const (
	msgSearchFailed     = "An unexpected error occurred"
	msgCreateFailed     = "An error occurred while creating applications."
	msgNoJobsSelected   = "Please select at least one job to create applications."
	titleNoJobsSelected = "No Jobs Selected"

	// EmptyMessage is shown when a search returned nothing.
	EmptyMessage = "No jobs found for your search."
	// NoFilteredResultsMessage is shown when filters hide every result.
	NoFilteredResultsMessage = "No jobs match the current filters."
)

// ValidationWarning is a precondition failure detected locally. It never
// reaches the network.
type ValidationWarning struct {
	Title   string
	Message string
}

func (w *ValidationWarning) Error() string { return w.Message }

func (w *ValidationWarning) Notification() Notification {
	return Notification{Title: w.Title, Message: w.Message, Variant: VariantWarning}
}

// ErrNoSelection is returned when a bulk submit is requested with nothing selected.
var ErrNoSelection = &ValidationWarning{Title: titleNoJobsSelected, Message: msgNoJobsSelected}

func createdNotification(n int) Notification {
	msg := fmt.Sprintf("%d job applications created successfully!", n)
	if n == 1 {
		msg = "1 job application created successfully!"
	}
	return Notification{Title: "Success", Message: msg, Variant: VariantSuccess}
}

func failedNotification(message string) Notification {
	return Notification{Title: "Error", Message: message, Variant: VariantError}
}

// remoteMessage extracts the message carried by a RemoteError, or fallback.
func remoteMessage(err error, fallback string) string {
	var re *domain.RemoteError
	if errors.As(err, &re) && strings.TrimSpace(re.Message) != "" {
		return re.Message
	}
	return fallback
}
