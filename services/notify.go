package services

import "log"

// Notifier delivers collaboration invitations. Delivery is best effort:
// a failure never rolls back the note mutation that triggered it.
type Notifier interface {
	SendCollaborationInvite(noteTitle, ownerEmail, inviteeEmail, permission string) error
}

// LogNotifier is the default sender; actual delivery transport is an
// external collaborator.
type LogNotifier struct{}

func (LogNotifier) SendCollaborationInvite(noteTitle, ownerEmail, inviteeEmail, permission string) error {
	log.Printf("Collaboration invite: %s shared %q with %s (%s)",
		ownerEmail, noteTitle, inviteeEmail, permission)
	return nil
}

// NotifyInviteAsync fires the invitation without blocking the request.
func NotifyInviteAsync(n Notifier, noteTitle, ownerEmail, inviteeEmail, permission string) {
	if n == nil {
		return
	}
	go func() {
		if err := n.SendCollaborationInvite(noteTitle, ownerEmail, inviteeEmail, permission); err != nil {
			log.Printf("Collaboration invite to %s failed (dropped): %v", inviteeEmail, err)
		}
	}()
}
