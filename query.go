package tmv1

import (
	"fmt"
	"maps"
	"net/http"
	"net/netip"
	"regexp"
	"slices"
	"strings"
)

// queryHeader carries filter expressions for endpoint and activity queries.
const queryHeader = "TMV1-Query"

var (
	macPattern  = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`)
	guidPattern = regexp.MustCompile(`^([\p{L}\p{N}_]+-+){1,5}[\p{L}\p{N}_]+$`)
)

// EndpointQueryFields returns the fields a raw value is matched against,
// detected in order: IP address, MAC address, agent GUID, operating system
// name, product code, and otherwise endpoint name or login account.
func EndpointQueryFields(value string) []QueryField {
	switch {
	case isIP(value):
		return []QueryField{FieldIP}
	case macPattern.MatchString(value):
		return []QueryField{FieldMACAddress}
	case guidPattern.MatchString(value):
		return []QueryField{FieldAgentGUID}
	case slices.Contains(operatingSystems, OperatingSystem(value)):
		return []QueryField{FieldOSName}
	case slices.Contains(productCodes, ProductCode(value)):
		return []QueryField{FieldProductCode, FieldInstalledProductCodes}
	}
	return []QueryField{FieldEndpointName, FieldLoginAccount}
}

var (
	operatingSystems = []OperatingSystem{OSLinux, OSWindows, OSMacOS, OSMacOSX}
	productCodes     = []ProductCode{ProductSAO, ProductSDS, ProductXES}
)

func isIP(value string) bool {
	_, err := netip.ParseAddr(value)
	return err == nil
}

// endpointFilter builds a filter with one parenthesized group per value.
// Inside a group the detected fields are or-ed; groups are joined with op.
func endpointFilter(op QueryOp, values ...string) string {
	groups := make([]string, 0, len(values))
	for _, value := range values {
		fields := EndpointQueryFields(value)
		clauses := make([]string, 0, len(fields))
		for _, field := range fields {
			clauses = append(clauses, fmt.Sprintf("%s eq '%s'", field, value))
		}
		groups = append(groups, "("+strings.Join(clauses, string(QueryOr))+")")
	}
	return strings.Join(groups, string(op))
}

// activityFilter builds a filter of field:"value" clauses joined with op.
// Fields are sorted for a stable result.
func activityFilter(op QueryOp, fields map[string]string) string {
	keys := slices.Sorted(maps.Keys(fields))
	clauses := make([]string, 0, len(keys))
	for _, k := range keys {
		clauses = append(clauses, fmt.Sprintf(`%s:"%s"`, k, fields[k]))
	}
	return strings.Join(clauses, string(op))
}

func queryHeaders(filter string) http.Header {
	h := make(http.Header)
	h.Set(queryHeader, filter)
	return h
}
