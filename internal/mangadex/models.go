package mangadex

// LocalizedString maps a language code to a translated value.
type LocalizedString map[string]string

// Preferred returns the English value when present, otherwise any value.
func (l LocalizedString) Preferred() string {
	if v, ok := l["en"]; ok && v != "" {
		return v
	}
	for _, v := range l {
		if v != "" {
			return v
		}
	}
	return ""
}

type SearchResponse struct {
	Result string  `json:"result"`
	Data   []Manga `json:"data"`
	Total  int     `json:"total"`
}

type Manga struct {
	ID            string          `json:"id"`
	Attributes    MangaAttributes `json:"attributes"`
	Relationships []Relationship  `json:"relationships"`
}

type MangaAttributes struct {
	Title       LocalizedString `json:"title"`
	Description LocalizedString `json:"description"`
	Status      string          `json:"status"`
	Tags        []Tag           `json:"tags"`
}

type Tag struct {
	ID         string        `json:"id"`
	Attributes TagAttributes `json:"attributes"`
}

type TagAttributes struct {
	Name LocalizedString `json:"name"`
}

type Relationship struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	Attributes *CoverAttributes `json:"attributes,omitempty"`
}

type CoverAttributes struct {
	FileName string `json:"fileName"`
}

// CoverFileName returns the cover art file name for the manga, or "" when
// the response carried no cover metadata.
func (m Manga) CoverFileName() string {
	for _, rel := range m.Relationships {
		if rel.Type == "cover_art" && rel.Attributes != nil && rel.Attributes.FileName != "" {
			return rel.Attributes.FileName
		}
	}
	return ""
}

// TagNames returns the manga's tag names in response order.
func (m Manga) TagNames() []string {
	names := make([]string, 0, len(m.Attributes.Tags))
	for _, tag := range m.Attributes.Tags {
		if name := tag.Attributes.Name.Preferred(); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// OutcomeKind distinguishes the three results a search can have. A failed
// call and an empty result set both leave the page displaying an empty
// list, but the presentation layer renders them differently.
type OutcomeKind int

const (
	OutcomeOK OutcomeKind = iota
	OutcomeEmpty
	OutcomeFailed
)

// SearchOutcome is the tagged result of a search call.
type SearchOutcome struct {
	Kind     OutcomeKind
	Response *SearchResponse
	Err      error
}

func OkOutcome(resp *SearchResponse) SearchOutcome {
	return SearchOutcome{Kind: OutcomeOK, Response: resp}
}

func EmptyOutcome() SearchOutcome {
	return SearchOutcome{Kind: OutcomeEmpty}
}

func FailedOutcome(err error) SearchOutcome {
	return SearchOutcome{Kind: OutcomeFailed, Err: err}
}
