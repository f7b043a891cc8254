package kubeconfig

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opsdesk/internal/bridge"
)

// stubTransport hands back a scripted document and records the invocation.
type stubTransport struct {
	result json.RawMessage
	err    error

	lastCommand string
	lastArgs    map[string]any
}

func (s *stubTransport) Mode() bridge.Mode { return bridge.ModeNative }

func (s *stubTransport) Invoke(_ context.Context, command string, args map[string]any) (json.RawMessage, error) {
	s.lastCommand = command
	s.lastArgs = args
	return s.result, s.err
}

func (s *stubTransport) Listen(string, bridge.EventHandler) (func(), error) {
	return func() {}, nil
}

func (s *stubTransport) Close() error { return nil }

func loaderFor(result string) (*Loader, *stubTransport) {
	transport := &stubTransport{result: json.RawMessage(result)}
	return NewLoader(bridge.NewBridge(transport, nil)), transport
}

func TestLoader_Load_DefaultPath(t *testing.T) {
	loader, transport := loaderFor(`{"clusters":[],"contexts":[],"users":[]}`)

	_, err := loader.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "load_kube_config", transport.lastCommand)
	assert.Equal(t, map[string]any{"path": "~/.kube/config"}, transport.lastArgs)
}

func TestLoader_Load_ExplicitPath(t *testing.T) {
	loader, transport := loaderFor(`{}`)

	_, err := loader.Load(context.Background(), "/tmp/other-config")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"path": "/tmp/other-config"}, transport.lastArgs)
}

func TestLoader_Load_RenamesCurrentContext(t *testing.T) {
	loader, _ := loaderFor(`{"current-context":"ctxA","clusters":[],"contexts":[],"users":[]}`)

	doc, err := loader.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "ctxA", doc.CurrentContext)

	marshaled, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(marshaled), `"currentContext":"ctxA"`)
	assert.NotContains(t, string(marshaled), "current-context")
}

func TestLoader_Load_DropsUsersWithoutCredentials(t *testing.T) {
	loader, _ := loaderFor(`{
		"users": [
			{"name": "null-creds", "user": null},
			{"name": "no-creds"},
			{"name": "good", "user": {"token": "t"}}
		]
	}`)

	doc, err := loader.Load(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, doc.Users, 1)
	assert.Equal(t, "good", doc.Users[0].Name)
	assert.Equal(t, "t", doc.Users[0].User.Token)
}

func TestLoader_Load_RenamesUserCredentialKeys(t *testing.T) {
	loader, _ := loaderFor(`{
		"users": [
			{"name": "u1", "user": {"client-certificate": "a", "client-key": "b"}}
		]
	}`)

	doc, err := loader.Load(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, doc.Users, 1)
	assert.Equal(t, "a", doc.Users[0].User.ClientCertificate)
	assert.Equal(t, "b", doc.Users[0].User.ClientKey)

	marshaled, err := json.Marshal(doc.Users[0])
	require.NoError(t, err)
	assert.Contains(t, string(marshaled), `"clientCertificate":"a"`)
	assert.Contains(t, string(marshaled), `"clientKey":"b"`)
	assert.NotContains(t, string(marshaled), "client-certificate")
	assert.NotContains(t, string(marshaled), "client-key")
}

func TestLoader_Load_InvalidFormat(t *testing.T) {
	tests := []struct {
		name   string
		result string
	}{
		{"null", `null`},
		{"array", `[1,2,3]`},
		{"string", `"not a config"`},
		{"number", `42`},
		{"boolean", `true`},
		{"garbage", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader, _ := loaderFor(tt.result)

			_, err := loader.Load(context.Background(), "")
			var invalid *bridge.InvalidFormatError
			require.True(t, errors.As(err, &invalid), "expected InvalidFormatError, got %v", err)
		})
	}
}

func TestLoader_Load_StandaloneModeFailsInvalidFormat(t *testing.T) {
	loader := NewLoader(bridge.NewBridge(bridge.NewStandaloneTransport(), nil))

	_, err := loader.Load(context.Background(), "")
	var invalid *bridge.InvalidFormatError
	require.True(t, errors.As(err, &invalid), "standalone invoke yields null, which is not an object")
}

func TestLoader_Load_PropagatesBridgeErrors(t *testing.T) {
	transport := &stubTransport{err: errors.New("invalid args `path` for command `load_kube_config`: missing")}
	loader := NewLoader(bridge.NewBridge(transport, nil))

	_, err := loader.Load(context.Background(), "")
	var missing *bridge.MissingArgumentError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "path", missing.Field)
	assert.Equal(t, "load_kube_config", missing.Command)
}

func TestLoader_Load_FreshDocumentPerCall(t *testing.T) {
	loader, _ := loaderFor(`{"current-context":"dev","clusters":[{"name":"c1","cluster":{"server":"https://x"}}]}`)

	first, err := loader.Load(context.Background(), "")
	require.NoError(t, err)

	first.CurrentContext = "mutated"
	first.Clusters[0].Cluster.Server = "https://mutated"

	second, err := loader.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "dev", second.CurrentContext, "a new load never sees earlier mutations")
	assert.Equal(t, "https://x", second.Clusters[0].Cluster.Server)
}

func TestLoader_Load_EndToEnd(t *testing.T) {
	loader, _ := loaderFor(`{
		"current-context": "dev",
		"clusters": [{"name": "c1", "cluster": {"server": "https://x"}}],
		"contexts": [{"name": "dev", "context": {"cluster": "c1", "user": "u1"}}],
		"users": [{"name": "u1", "user": {"client-certificate": "a", "client-key": "b"}}]
	}`)

	doc, err := loader.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "dev", doc.CurrentContext)
	require.Len(t, doc.Users, 1)
	assert.Equal(t, "a", doc.Users[0].User.ClientCertificate)
	assert.Equal(t, "b", doc.Users[0].User.ClientKey)

	res := Resolve(doc, "dev")
	require.NotNil(t, res.Cluster)
	require.NotNil(t, res.User)
	assert.Equal(t, "c1", res.Cluster.Name)
	assert.Equal(t, "u1", res.User.Name)
	assert.Equal(t, "default", res.EffectiveNamespace())
}

func TestLoader_Load_PassesThroughUnrenamedFields(t *testing.T) {
	loader, _ := loaderFor(`{
		"apiVersion": "v1",
		"kind": "Config",
		"preferences": {"colors": true},
		"clusters": [{"name": "c1", "cluster": {
			"server": "https://x",
			"certificate-authority-data": "Zm9v",
			"insecure-skip-tls-verify": true
		}}]
	}`)

	doc, err := loader.Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "v1", doc.APIVersion)
	assert.Equal(t, "Config", doc.Kind)
	assert.Equal(t, map[string]any{"colors": true}, doc.Preferences)
	require.Len(t, doc.Clusters, 1)
	assert.Equal(t, "Zm9v", doc.Clusters[0].Cluster.CertificateAuthorityData)
	assert.True(t, doc.Clusters[0].Cluster.InsecureSkipTLSVerify)

	marshaled, err := json.Marshal(doc.Clusters[0])
	require.NoError(t, err)
	assert.Contains(t, string(marshaled), "certificate-authority-data", "cluster keys keep their wire spelling")
}
