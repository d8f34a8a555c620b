package subpanel

import (
	"strings"

	"github.com/opmodel/legacyui/internal/legacy"
)

// WidgetClass names a legacy top button implementation.
type WidgetClass string

// Known legacy widget classes.
const (
	WidgetCreateTask      WidgetClass = "SubPanelTopCreateTaskButton"
	WidgetScheduleMeeting WidgetClass = "SubPanelTopScheduleMeetingButton"
	WidgetScheduleCall    WidgetClass = "SubPanelTopScheduleCallButton"
	WidgetCreateNote      WidgetClass = "SubPanelTopCreateNoteButton"
	WidgetComposeEmail    WidgetClass = "SubPanelTopComposeEmailButton"
	WidgetArchiveEmail    WidgetClass = "SubPanelTopArchiveEmailButton"
	WidgetSummary         WidgetClass = "SubPanelTopSummaryButton"
	WidgetFilter          WidgetClass = "SubPanelTopFilterButton"
	WidgetSelectUsers     WidgetClass = "SubPanelTopSelectUsersButton"
	WidgetSelectContacts  WidgetClass = "SubPanelTopSelectContactsButton"
)

// Button keys emitted by the composer.
const (
	ButtonCreate = "create"
	ButtonSelect = "select"
)

// buttonTemplate is the normalized form of a known widget class.
// A skip template suppresses the button entirely.
type buttonTemplate struct {
	key      string
	labelKey string
	module   string
	skip     bool
}

var buttonTable = map[WidgetClass]buttonTemplate{
	WidgetCreateTask:      {key: ButtonCreate, labelKey: "LNK_NEW_TASK", module: "tasks"},
	WidgetScheduleMeeting: {key: ButtonCreate, labelKey: "LNK_NEW_MEETING", module: "meetings"},
	WidgetScheduleCall:    {key: ButtonCreate, labelKey: "LNK_NEW_CALL", module: "calls"},
	WidgetCreateNote:      {key: ButtonCreate, labelKey: "LNK_NEW_NOTE", module: "notes"},
	WidgetComposeEmail:    {skip: true},
	WidgetArchiveEmail:    {skip: true},
	WidgetSummary:         {skip: true},
	WidgetFilter:          {skip: true},
	WidgetSelectUsers:     {skip: true},
	WidgetSelectContacts:  {skip: true},
}

// skipped reports whether the widget class is known and intentionally hidden.
func skipped(wc WidgetClass) bool {
	tpl, ok := buttonTable[wc]
	return ok && tpl.skip
}

// MapButtons converts the raw top buttons of sp into normalized buttons.
//
// Known widget classes use the static table. Unknown classes fall back to two
// rules: a class containing "Create" becomes a quick-create button, otherwise
// a class containing "Select" becomes a link button. Both target the tab's
// frontend module. Anything else is dropped.
func MapButtons(sp *legacy.Subpanel, tab legacy.TabDescriptor, modules ModuleNameMapper) []Button {
	raw := sp.Buttons()
	buttons := make([]Button, 0, len(raw))

	for _, def := range raw {
		if def.WidgetClass == "" {
			continue
		}
		wc := WidgetClass(def.WidgetClass)
		if skipped(wc) {
			continue
		}

		if tpl, ok := buttonTable[wc]; ok {
			buttons = append(buttons, newButton(tpl.key, tpl.labelKey, tpl.module, def))
			continue
		}

		switch {
		case strings.Contains(def.WidgetClass, "Create"):
			buttons = append(buttons, newButton(ButtonCreate, "LBL_QUICK_CREATE", modules.ToFrontEnd(tab.Module), def))
		case strings.Contains(def.WidgetClass, "Select"):
			buttons = append(buttons, newButton(ButtonSelect, "LBL_LINK", modules.ToFrontEnd(tab.Module), def))
		}
	}

	return buttons
}

func newButton(key, labelKey, module string, def legacy.ButtonDefinition) Button {
	return Button{
		Key:              key,
		LabelKey:         labelKey,
		Module:           module,
		WidgetClass:      def.WidgetClass,
		AdditionalFields: def.AdditionalFields.Clone(),
		ExtraParams:      def.ExtraParams.Clone(),
	}
}
