package tool

// Policy restricts which catalog keys may be dispatched.
type Policy struct {
	AllowList []string `yaml:"allow,omitempty" json:"allow,omitempty"` // empty allows every tool
	BlockList []string `yaml:"block,omitempty" json:"block,omitempty"`
}

// IsAllowed checks whether a tool key is permitted by Allow/Block lists.
func (p *Policy) IsAllowed(key string) bool {
	if p == nil {
		return true
	}
	for _, b := range p.BlockList {
		if b == key {
			return false
		}
	}
	if len(p.AllowList) == 0 {
		return true
	}
	for _, a := range p.AllowList {
		if a == key {
			return true
		}
	}
	return false
}
