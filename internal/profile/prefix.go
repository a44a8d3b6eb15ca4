package profile

// prefixed scopes the key space of a backend. Run history stays shared.
type prefixed struct {
	RunLog
	kv     KV
	prefix string
}

// WithPrefix returns a backend whose keys are stored under prefix, so several
// players can keep separate progress in one store while sharing the run
// history.
func WithPrefix(b Backend, prefix string) Backend {
	if prefix == "" {
		return b
	}
	return prefixed{RunLog: b, kv: b, prefix: prefix}
}

func (p prefixed) Get(key string) (string, bool, error) {
	return p.kv.Get(p.prefix + key)
}

func (p prefixed) Set(key, value string) error {
	return p.kv.Set(p.prefix+key, value)
}

func (p prefixed) Delete(key string) error {
	return p.kv.Delete(p.prefix + key)
}
