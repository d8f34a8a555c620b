package subpanel

import (
	"strings"

	"github.com/opmodel/legacyui/internal/legacy"
)

// Button markers recognized among list fields.
const (
	MarkerEdit   = "edit_button"
	MarkerClose  = "close_button"
	MarkerRemove = "remove_button"
)

// ActionUnlink removes the relationship between the parent and a row record.
const ActionUnlink = "unlink"

// DeriveLineActions returns the per-row actions of sp.
//
// The only derived action today is unlink, offered when the effective panel
// (the header sub-panel of a collection) lists a remove_button.
func DeriveLineActions(sp *legacy.Subpanel, module string) []LineAction {
	panel, ok := sp.HeaderPanel()
	if !ok {
		return []LineAction{}
	}

	markers := buttonMarkers(panel.ListFields())
	if _, ok := markers[MarkerRemove]; !ok {
		return []LineAction{}
	}

	return []LineAction{unlinkAction(module)}
}

func buttonMarkers(fields legacy.ListFields) map[string]struct{} {
	markers := make(map[string]struct{})
	for _, f := range fields {
		if f.QueryOnly() {
			continue
		}
		name := f.Alias
		if name == "" {
			name = f.Key
		}
		if !strings.Contains(strings.ToLower(name), "button") {
			continue
		}
		switch name {
		case MarkerEdit, MarkerClose, MarkerRemove:
			markers[name] = struct{}{}
		}
	}
	return markers
}

func unlinkAction(module string) LineAction {
	return LineAction{
		Key:          ActionUnlink,
		Action:       ActionUnlink,
		Icon:         "unlink",
		AsyncProcess: true,
		LabelKey:     "LBL_UNLINK_RECORD",
		Module:       module,
		Routing:      false,
		Params: LineActionParams{
			LinkFieldMapping: map[string]string{
				"get_emails_by_assign_or_link": "emails",
			},
			DisplayConfirmation: true,
			ConfirmationLabel:   "LBL_UNLINK_RELATIONSHIP_CONFIRM",
		},
		Modes: []string{"list"},
	}
}
