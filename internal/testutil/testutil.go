// Package testutil provides test helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempDir creates a temporary directory that is removed when the test ends.
func TempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "legacyui-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			t.Logf("warning: failed to remove temp dir %s: %v", dir, err)
		}
	})
	return dir
}

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// WriteTree writes every relative path to content under dir.
func WriteTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
}

// MetadataFixture writes a small metadata directory with an Accounts module
// holding a plain contacts tab, a history collection and a hidden bugs tab.
// It returns the directory.
func MetadataFixture(t *testing.T) string {
	t.Helper()
	dir := TempDir(t)
	WriteTree(t, dir, map[string]string{
		"modules.yaml": `modules:
  Accounts: accounts
  Contacts: contacts
  Meetings: meetings
  Notes: notes
  History: history
  Bugs: bugs
`,
		"layouts/Accounts.yaml": `subpanel_setup:
  contacts:
    module: Contacts
    subpanel_name: ForAccounts
    title_key: LBL_CONTACTS_SUBPANEL_TITLE
    top_buttons:
      - widget_class: SubPanelTopButtonQuickCreate
      - widget_class: SubPanelTopSelectButton
  history:
    module: History
    title_key: LBL_HISTORY_SUBPANEL_TITLE
    header_definition_from_subpanel: meetings
    collection_list:
      meetings:
        module: Meetings
        subpanel_name: ForHistory
      notes:
        module: Notes
        subpanel_name: ForHistory
  bugs:
    module: Bugs
available_tabs: [history, contacts]
`,
		"subpanels/Contacts/ForAccounts.yaml": `list_fields:
  name:
    vname: LBL_LIST_NAME
    widget_class: SubPanelDetailViewLink
  account_id:
    usage: query_only
  email1:
    vname: LBL_LIST_EMAIL
  edit_button:
    vname: LBL_EDIT_BUTTON
  remove_button:
    vname: LBL_REMOVE
top_buttons:
  - widget_class: SubPanelTopComposeEmailButton
insightWidget:
  rows:
    - justify: start
      cols:
        - labelKey: "Open {{title_key}}"
`,
		"subpanels/Meetings/ForHistory.yaml": `list_fields:
  name:
    vname: LBL_LIST_SUBJECT
  date_start:
    vname: LBL_LIST_DATE
  close_button:
    vname: LBL_CLOSE
`,
		"subpanels/Notes/ForHistory.yaml": `list_fields:
  name:
    vname: LBL_LIST_SUBJECT
`,
		"vardefs/Contacts.yaml": `fields:
  name:
    type: name
    vname: LBL_NAME
  account_id:
    type: id
  email1:
    type: email
`,
		"vardefs/Meetings.yaml": `fields:
  name:
    type: name
  date_start:
    type: datetime
`,
	})
	return dir
}
