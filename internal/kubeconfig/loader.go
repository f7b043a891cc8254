package kubeconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"opsdesk/internal/bridge"
	"opsdesk/pkg/logging"
)

// DefaultPath is the document path sent to the host when the caller does
// not name one. The host expands the tilde.
const DefaultPath = "~/.kube/config"

// loadCommand is the host command that reads and parses the document.
const loadCommand = "load_kube_config"

// Loader fetches the raw configuration document through the bridge and
// normalizes it. Each Load returns a fresh document; earlier snapshots are
// never touched.
type Loader struct {
	bridge *bridge.Bridge
}

// NewLoader wires a Loader to the execution bridge.
func NewLoader(b *bridge.Bridge) *Loader {
	return &Loader{bridge: b}
}

// Load fetches and normalizes the document at path (DefaultPath when
// empty). The bridge result must be a JSON object; anything else, null
// included, fails with *bridge.InvalidFormatError. Note that in standalone
// mode every command resolves to null, so Load always fails there.
func (l *Loader) Load(ctx context.Context, path string) (*Document, error) {
	if path == "" {
		path = DefaultPath
	}

	raw, err := l.bridge.Invoke(ctx, loadCommand, map[string]any{"path": path})
	if err != nil {
		return nil, err
	}

	doc, err := parseDocument(raw)
	if err != nil {
		return nil, err
	}

	logging.Debug("KubeConfig", "Loaded document from '%s': %d clusters, %d contexts, %d users",
		path, len(doc.Clusters), len(doc.Contexts), len(doc.Users))
	return doc, nil
}

// Wire counterparts for the two shapes normalization renames. Everything
// else round-trips through the Document types directly.

type rawDocument struct {
	APIVersion     string         `json:"apiVersion"`
	Kind           string         `json:"kind"`
	CurrentContext string         `json:"current-context"`
	Clusters       []NamedCluster `json:"clusters"`
	Contexts       []NamedContext `json:"contexts"`
	Users          []rawNamedUser `json:"users"`
	Preferences    map[string]any `json:"preferences"`
}

// rawNamedUser keeps the credential sub-object as a pointer so an absent
// or null entry is detectable before normalization.
type rawNamedUser struct {
	Name string   `json:"name"`
	User *rawUser `json:"user"`
}

type rawUser struct {
	Token             string      `json:"token"`
	ClientCertificate string      `json:"client-certificate"`
	ClientKey         string      `json:"client-key"`
	Username          string      `json:"username"`
	Password          string      `json:"password"`
	Exec              *ExecConfig `json:"exec"`
}

// parseDocument validates the raw bridge result and applies normalization:
// current-context becomes currentContext, user credentials get their
// camelCase keys, and user entries without a credential sub-object are
// dropped.
func parseDocument(raw json.RawMessage) (*Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &bridge.InvalidFormatError{Reason: "host returned null"}
	}
	if trimmed[0] != '{' {
		return nil, &bridge.InvalidFormatError{Reason: fmt.Sprintf("got %s", jsonKind(trimmed))}
	}

	var rawDoc rawDocument
	if err := json.Unmarshal(trimmed, &rawDoc); err != nil {
		return nil, &bridge.InvalidFormatError{Reason: err.Error()}
	}

	doc := &Document{
		APIVersion:     rawDoc.APIVersion,
		Kind:           rawDoc.Kind,
		CurrentContext: rawDoc.CurrentContext,
		Clusters:       rawDoc.Clusters,
		Contexts:       rawDoc.Contexts,
		Preferences:    rawDoc.Preferences,
	}

	for _, u := range rawDoc.Users {
		if u.User == nil {
			logging.Debug("KubeConfig", "Dropping user entry '%s': no credential object", u.Name)
			continue
		}
		doc.Users = append(doc.Users, NamedUser{
			Name: u.Name,
			User: User{
				Token:             u.User.Token,
				ClientCertificate: u.User.ClientCertificate,
				ClientKey:         u.User.ClientKey,
				Username:          u.User.Username,
				Password:          u.User.Password,
				Exec:              u.User.Exec,
			},
		})
	}

	return doc, nil
}

// jsonKind names the top-level JSON kind for error messages.
func jsonKind(data []byte) string {
	switch data[0] {
	case '[':
		return "an array"
	case '"':
		return "a string"
	case 't', 'f':
		return "a boolean"
	default:
		return "a scalar"
	}
}
