package fragment

import "fmt"

// Access is the access mode of a global symbol.
type Access string

const (
	AccessReadonly Access = "readonly"
	AccessWritable Access = "writable"
	// AccessOff removes a global that an earlier fragment declared.
	AccessOff Access = "off"
)

// IsValid reports whether a is one of readonly, writable or off.
func (a Access) IsValid() bool {
	switch a {
	case AccessReadonly, AccessWritable, AccessOff:
		return true
	default:
		return false
	}
}

// ParseAccess converts a raw configuration value into an Access.
// The legacy spellings "readable" and "writeable" and the booleans false/true are accepted as aliases.
func ParseAccess(v any) (Access, error) {
	switch val := v.(type) {
	case Access:
		if val.IsValid() {
			return val, nil
		}
	case string:
		switch val {
		case "readonly", "readable":
			return AccessReadonly, nil
		case "writable", "writeable":
			return AccessWritable, nil
		case "off":
			return AccessOff, nil
		}
	case bool:
		if val {
			return AccessWritable, nil
		}
		return AccessReadonly, nil
	}
	return "", fmt.Errorf("access mode %v is not one of readonly, writable, off", v)
}
