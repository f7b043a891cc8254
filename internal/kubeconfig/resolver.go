package kubeconfig

// DefaultNamespace is what EffectiveNamespace falls back to when a context
// names none.
const DefaultNamespace = "default"

// Resolution is the outcome of resolving one context name. Any field may
// be nil: an unknown context leaves all three unset, and a found context
// with dangling cluster or user references leaves those particular fields
// unset. Neither case is an error.
type Resolution struct {
	Context *NamedContext
	Cluster *NamedCluster
	User    *NamedUser
}

// Resolve looks contextName up in doc and follows its cluster and user
// references. Pure and deterministic: call it again whenever the selected
// context changes. Referential integrity is deliberately not enforced.
func Resolve(doc *Document, contextName string) Resolution {
	var res Resolution
	if doc == nil || contextName == "" {
		return res
	}

	res.Context = doc.ContextByName(contextName)
	if res.Context == nil {
		return res
	}

	res.Cluster = doc.ClusterByName(res.Context.Context.Cluster)
	res.User = doc.UserByName(res.Context.Context.User)
	return res
}

// EffectiveNamespace returns the resolved context's namespace, or
// DefaultNamespace when the context is unset or names none. Computed per
// call; nothing is written back to the document.
func (r Resolution) EffectiveNamespace() string {
	if r.Context == nil || r.Context.Context.Namespace == "" {
		return DefaultNamespace
	}
	return r.Context.Context.Namespace
}
