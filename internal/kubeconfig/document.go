// Package kubeconfig loads and resolves the multi-cluster configuration
// document the host serves to the shell.
//
// The document is kubeconfig-shaped: named clusters, named users, and named
// contexts tying one of each together with an optional namespace. Loading
// goes through the execution bridge (the host owns file access); resolution
// is a pure lookup over the loaded document.
package kubeconfig

// Document is the normalized configuration document. Field naming follows
// the post-normalization convention: currentContext and the user credential
// keys are camelCase, everything else keeps its wire spelling.
type Document struct {
	APIVersion     string         `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	Kind           string         `json:"kind,omitempty" yaml:"kind,omitempty"`
	CurrentContext string         `json:"currentContext,omitempty" yaml:"currentContext,omitempty"`
	Clusters       []NamedCluster `json:"clusters" yaml:"clusters"`
	Contexts       []NamedContext `json:"contexts" yaml:"contexts"`
	Users          []NamedUser    `json:"users" yaml:"users"`
	Preferences    map[string]any `json:"preferences,omitempty" yaml:"preferences,omitempty"`
}

// NamedCluster pairs a cluster entry with its name.
type NamedCluster struct {
	Name    string  `json:"name" yaml:"name"`
	Cluster Cluster `json:"cluster" yaml:"cluster"`
}

// Cluster describes one API server endpoint. Keys keep their kubeconfig
// spelling; normalization does not touch the cluster sub-object.
type Cluster struct {
	Server                   string `json:"server" yaml:"server"`
	CertificateAuthority     string `json:"certificate-authority,omitempty" yaml:"certificate-authority,omitempty"`
	CertificateAuthorityData string `json:"certificate-authority-data,omitempty" yaml:"certificate-authority-data,omitempty"`
	InsecureSkipTLSVerify    bool   `json:"insecure-skip-tls-verify,omitempty" yaml:"insecure-skip-tls-verify,omitempty"`
}

// NamedContext pairs a context entry with its name.
type NamedContext struct {
	Name    string  `json:"name" yaml:"name"`
	Context Context `json:"context" yaml:"context"`
}

// Context references a cluster and a user by name, with an optional
// namespace. References are resolved leniently; see Resolve.
type Context struct {
	Cluster   string `json:"cluster" yaml:"cluster"`
	User      string `json:"user" yaml:"user"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// NamedUser pairs a credential entry with its name. Entries whose
// credential sub-object is absent or null never survive loading.
type NamedUser struct {
	Name string `json:"name" yaml:"name"`
	User User   `json:"user" yaml:"user"`
}

// User holds one credential variant: a bearer token, a client cert/key
// pair, basic auth, or an exec plugin. The certificate keys carry the
// normalized camelCase spelling.
type User struct {
	Token             string      `json:"token,omitempty" yaml:"token,omitempty"`
	ClientCertificate string      `json:"clientCertificate,omitempty" yaml:"clientCertificate,omitempty"`
	ClientKey         string      `json:"clientKey,omitempty" yaml:"clientKey,omitempty"`
	Username          string      `json:"username,omitempty" yaml:"username,omitempty"`
	Password          string      `json:"password,omitempty" yaml:"password,omitempty"`
	Exec              *ExecConfig `json:"exec,omitempty" yaml:"exec,omitempty"`
}

// ExecConfig describes an exec-based credential plugin. Its keys are
// camelCase on the wire already.
type ExecConfig struct {
	Command            string       `json:"command" yaml:"command"`
	Args               []string     `json:"args,omitempty" yaml:"args,omitempty"`
	Env                []ExecEnvVar `json:"env,omitempty" yaml:"env,omitempty"`
	APIVersion         string       `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
	InteractiveMode    string       `json:"interactiveMode,omitempty" yaml:"interactiveMode,omitempty"`
	ProvideClusterInfo bool         `json:"provideClusterInfo,omitempty" yaml:"provideClusterInfo,omitempty"`
}

// ExecEnvVar is one environment variable handed to an exec plugin.
type ExecEnvVar struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// ContextByName returns the context entry with the given name, or nil.
// Lookup is a linear scan; documents hold tens of entries at most.
func (d *Document) ContextByName(name string) *NamedContext {
	for i := range d.Contexts {
		if d.Contexts[i].Name == name {
			return &d.Contexts[i]
		}
	}
	return nil
}

// ClusterByName returns the cluster entry with the given name, or nil.
func (d *Document) ClusterByName(name string) *NamedCluster {
	for i := range d.Clusters {
		if d.Clusters[i].Name == name {
			return &d.Clusters[i]
		}
	}
	return nil
}

// UserByName returns the user entry with the given name, or nil.
func (d *Document) UserByName(name string) *NamedUser {
	for i := range d.Users {
		if d.Users[i].Name == name {
			return &d.Users[i]
		}
	}
	return nil
}

// ServerForCurrentContext returns the API server URL of the current
// context's cluster, or "" when any link in the chain is missing.
func (d *Document) ServerForCurrentContext() string {
	res := Resolve(d, d.CurrentContext)
	if res.Cluster == nil {
		return ""
	}
	return res.Cluster.Cluster.Server
}
