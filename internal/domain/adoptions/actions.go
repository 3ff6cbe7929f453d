package adoptions

// Action es algo que la UI puede ofrecer sobre una solicitud.
type Action string

const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

// Target es el estado al que lleva la acción.
func (a Action) Target() Status {
	switch a {
	case ActionApprove:
		return StatusApproved
	case ActionReject:
		return StatusRejected
	case ActionComplete:
		return StatusCompleted
	case ActionCancel:
		return StatusCancelled
	}
	return ""
}

// Viewer describe quién mira la solicitud.
type Viewer struct {
	IsOrganization bool
	IsApplicant    bool
}

// AvailableActions solo sugiere botones; el server sigue siendo quien decide.
func AvailableActions(s Status, v Viewer) []Action {
	var out []Action
	open := s == StatusPending || s == StatusUnderReview
	if v.IsOrganization {
		switch {
		case open:
			out = append(out, ActionApprove, ActionReject)
		case s == StatusApproved:
			out = append(out, ActionComplete)
		}
	}
	if v.IsApplicant && open {
		out = append(out, ActionCancel)
	}
	return out
}
