package nhlrecords

import (
	"strings"

	sonic "github.com/bytedance/sonic"
)

type franchiseEnvelope struct {
	Data []struct {
		Teams []teamEnvelope `json:"teams"`
	} `json:"data"`
}

type teamEnvelope struct {
	ID         int64           `json:"id"`
	Active     flexBool        `json:"active"`
	TriCode    string          `json:"triCode"`
	PlaceName  localizedString `json:"placeName"`
	CommonName localizedString `json:"commonName"`
	Logos      []logoEnvelope  `json:"logos"`
}

type logoEnvelope struct {
	Background  string `json:"background"`
	StartSeason *int   `json:"startSeason"`
	EndSeason   *int   `json:"endSeason"`
	SecureURL   string `json:"secureUrl"`
	URL         string `json:"url"`
}

type playersEnvelope struct {
	Data []struct {
		ID            int64  `json:"id"`
		FirstName     string `json:"firstName"`
		LastName      string `json:"lastName"`
		SweaterNumber *int   `json:"sweaterNumber"`
		Position      string `json:"position"`
		BirthCity     string `json:"birthCity"`
		BirthCountry  string `json:"birthCountry"`
		CurrentTeamID int64  `json:"currentTeamId"`
	} `json:"data"`
}

// flexBool reads the records "active" flag, which shows up both as a
// boolean and as a "Y"/"N" string depending on the endpoint.
type flexBool struct {
	value bool
}

func (b *flexBool) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch trimmed {
	case "", "null":
		return nil
	case "true":
		b.value = true
		return nil
	case "false":
		return nil
	}
	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return err
	}
	b.value = strings.EqualFold(strings.TrimSpace(s), "Y")
	return nil
}

// localizedString reads either a plain string or {"default": ...}.
type localizedString struct {
	Default string `json:"default"`
}

func (s *localizedString) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		return nil
	}
	if strings.HasPrefix(trimmed, "{") {
		var obj map[string]string
		if err := sonic.Unmarshal(data, &obj); err != nil {
			return err
		}
		if v, ok := obj["default"]; ok {
			s.Default = v
			return nil
		}
		for _, v := range obj {
			s.Default = v
			return nil
		}
		return nil
	}
	var plain string
	if err := sonic.Unmarshal(data, &plain); err != nil {
		return err
	}
	s.Default = plain
	return nil
}
