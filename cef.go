package tmv1

import (
	"strconv"
	"strings"
)

// indicatorCEFKeys maps indicator types to CEF extension keys. Other types
// map to their lowerCamelCase name.
var indicatorCEFKeys = map[string]string{
	"command_line":            "dproc",
	"url":                     "request",
	"domain":                  "sntdom",
	"ip":                      "src",
	"email_sender":            "suser",
	"fullpath":                "filePath",
	"filename":                "fname",
	"file_sha1":               "fileHash",
	"user_account":            "suser",
	"host":                    "shost",
	"port":                    "spt",
	"process_id":              "dpid",
	"registry_key":            "TrendMicroVoRegistryKeyHandle",
	"registry_value":          "TrendMicroVoRegistryValue",
	"registry_value_data":     "TrendMicroVoRegistryData",
	"file_sha256":             "TrendMicroVoFileHashSha256",
	"email_message_id":        "TrendMicroVoEmailMessageId",
	"email_message_unique_id": "TrendMicroVoEmailMessageUniqueId",
}

// MapCEF flattens an alert into Common Event Format extension fields, for
// forwarding to a SIEM.
//
// When several entities or indicators map to the same key the last one
// wins.
func MapCEF(alert *Alert) map[string]string {
	common := alert.Common()
	data := mapCEFCommon(common)
	mapCEFEntities(data, common.ImpactScope.Entities)
	mapCEFIndicators(data, common.Indicators)
	switch {
	case alert.SAE != nil:
		mapCEFSAE(data, alert.SAE)
	case alert.TI != nil:
		mapCEFTI(data, alert.TI)
	}
	return data
}

func mapCEFCommon(a *AlertCommon) map[string]string {
	data := map[string]string{
		"externalId":        a.ID,
		"act":               string(a.InvestigationStatus),
		"cat":               a.Model,
		"Severity":          string(a.Severity),
		"rt":                a.CreatedDateTime,
		"sourceServiceName": string(a.AlertProvider),
		"msg":               "Workbench Link: " + a.WorkbenchLink,
		"cnt":               strconv.Itoa(a.Score),
		"cn1":               strconv.Itoa(a.ImpactScope.DesktopCount),
		"cn1Label":          "Desktop Count",
		"cn2":               strconv.Itoa(a.ImpactScope.ServerCount),
		"cn2Label":          "Server Count",
		"cn3":               strconv.Itoa(a.ImpactScope.AccountCount),
		"cn3Label":          "Account Count",
		"cn4":               strconv.Itoa(a.ImpactScope.EmailAddressCount),
		"cn4Label":          "Email Address Count",
		"cs1Label":          "Provenance",
	}
	if len(a.Indicators) > 0 {
		data["cs1"] = strings.Join(a.Indicators[0].Provenance, ", ")
	}
	return data
}

func mapCEFEntities(data map[string]string, entities []Entity) {
	for _, e := range entities {
		if host := e.EntityValue.Host; host != nil {
			data["dhost"] = host.Name
			data["dst"] = strings.Join(host.IPs, ", ")
			continue
		}
		data["duser"] = e.EntityValue.Text
	}
}

func mapCEFIndicators(data map[string]string, indicators []Indicator) {
	for _, ind := range indicators {
		if host := ind.Value.Host; host != nil {
			data["shost"] = host.Name
			data["src"] = strings.Join(host.IPs, ", ")
			continue
		}
		key, ok := indicatorCEFKeys[ind.Type]
		if !ok {
			key = lowerCamel(ind.Type)
		}
		data[key] = ind.Value.Text
	}
}

func mapCEFSAE(data map[string]string, a *SAEAlert) {
	if len(a.MatchedRules) > 0 {
		rule := a.MatchedRules[0]
		data["reason"] = rule.Name
		if len(rule.MatchedFilters) > 0 {
			data["cs2"] = rule.MatchedFilters[0].Name
			data["cs2Label"] = "Matched Filter"
			data["cs3"] = strings.Join(rule.MatchedFilters[0].MitreTechniqueIDs, ", ")
			data["cs3Label"] = "Matched Techniques"
		}
	}
	data["msg"] += "\nDescription: " + a.Description
}

func mapCEFTI(data map[string]string, a *TIAlert) {
	if len(a.MatchedIndicatorPatterns) > 0 {
		pattern := a.MatchedIndicatorPatterns[0]
		data["cs2"] = strings.Join(pattern.Tags, ", ")
		data["cs2Label"] = "Matched Pattern Tags"
		data["cs3"] = pattern.Pattern
		data["cs3Label"] = "Matched Pattern"
	}
	data["msg"] += "\nReport Link: " + a.ReportLink
	data["createdBy"] = a.CreatedBy
	for key, value := range map[string]string{
		"campaign":         a.Campaign,
		"industry":         a.Industry,
		"regionAndCountry": a.RegionAndCountry,
	} {
		if value != "" {
			data[key] = value
		}
	}
}

// lowerCamel converts snake_case to lowerCamelCase, lowering the rest of
// each word: "file_SHA1" becomes "fileSha1".
func lowerCamel(s string) string {
	var sb strings.Builder
	for i, word := range strings.Split(s, "_") {
		if word == "" {
			continue
		}
		word = strings.ToLower(word)
		if i > 0 && sb.Len() > 0 {
			word = strings.ToUpper(word[:1]) + word[1:]
		}
		sb.WriteString(word)
	}
	return sb.String()
}
