package kubeconfig

import (
	"encoding/base64"

	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"
)

// ClientcmdConfig converts the normalized document into a client-go
// api.Config so standard kubectl tooling can consume what the host served.
// The conversion is lossy only for Preferences extensions, which client-go
// models as runtime objects.
func (d *Document) ClientcmdConfig() *api.Config {
	cfg := api.NewConfig()
	cfg.Kind = d.Kind
	cfg.APIVersion = d.APIVersion
	cfg.CurrentContext = d.CurrentContext

	for _, c := range d.Clusters {
		cluster := api.NewCluster()
		cluster.Server = c.Cluster.Server
		cluster.CertificateAuthority = c.Cluster.CertificateAuthority
		cluster.CertificateAuthorityData = decodeCertData(c.Cluster.CertificateAuthorityData)
		cluster.InsecureSkipTLSVerify = c.Cluster.InsecureSkipTLSVerify
		cfg.Clusters[c.Name] = cluster
	}

	for _, c := range d.Contexts {
		kctx := api.NewContext()
		kctx.Cluster = c.Context.Cluster
		kctx.AuthInfo = c.Context.User
		kctx.Namespace = c.Context.Namespace
		cfg.Contexts[c.Name] = kctx
	}

	for _, u := range d.Users {
		auth := api.NewAuthInfo()
		auth.Token = u.User.Token
		auth.ClientCertificate = u.User.ClientCertificate
		auth.ClientKey = u.User.ClientKey
		auth.Username = u.User.Username
		auth.Password = u.User.Password
		if e := u.User.Exec; e != nil {
			exec := &api.ExecConfig{
				Command:            e.Command,
				Args:               e.Args,
				APIVersion:         e.APIVersion,
				InteractiveMode:    api.ExecInteractiveMode(e.InteractiveMode),
				ProvideClusterInfo: e.ProvideClusterInfo,
			}
			for _, env := range e.Env {
				exec.Env = append(exec.Env, api.ExecEnvVar{Name: env.Name, Value: env.Value})
			}
			auth.Exec = exec
		}
		cfg.AuthInfos[u.Name] = auth
	}

	return cfg
}

// Export serializes the document as kubectl-compatible YAML.
func Export(d *Document) ([]byte, error) {
	return clientcmd.Write(*d.ClientcmdConfig())
}

// decodeCertData unwraps the base64 the wire uses for inline CA material.
// Data that does not decode is passed through raw rather than dropped.
func decodeCertData(s string) []byte {
	if s == "" {
		return nil
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return []byte(s)
	}
	return data
}
