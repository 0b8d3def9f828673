package oid

import "strconv"

// Enterprises is the arc path under which private enterprise numbers are assigned.
const Enterprises = "1.3.6.1.4.1"

// vendors maps private enterprise numbers to short vendor names.
var vendors = map[uint32]string{
	34578:    "hpe",
	632:      "aruba",
	54345:    "cisco",
	65346546: "ibm",
}

// Vendor returns the vendor owning the enterprise subtree that s falls in.
func Vendor(s string) (string, bool) {
	if !IsDescendant(s, Enterprises) {
		return "", false
	}
	arcs, err := Parse(s)
	if err != nil {
		return "", false
	}
	name, ok := vendors[arcs[Depth(Enterprises)]]
	return name, ok
}

// Vendors returns a copy of the enterprise-number table keyed by decimal string.
func Vendors() map[string]string {
	out := make(map[string]string, len(vendors))
	for num, name := range vendors {
		out[strconv.FormatUint(uint64(num), 10)] = name
	}
	return out
}
