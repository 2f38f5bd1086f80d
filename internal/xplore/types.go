package xplore

// apiResponse is the JSON shape of one search response page.
type apiResponse struct {
	TotalRecords  int       `json:"total_records"`
	TotalSearched int       `json:"total_searched"`
	Articles      []Article `json:"articles"`
}

// Article is one search result as delivered by the API. The core
// treats it purely as a source of raw field strings.
type Article struct {
	DOI                string     `json:"doi"`
	Title              string     `json:"title"`
	Publisher          string     `json:"publisher"`
	ISBN               string     `json:"isbn"`
	ISSN               string     `json:"issn"`
	ContentType        string     `json:"content_type"`
	Abstract           string     `json:"abstract"`
	PublicationTitle   string     `json:"publication_title"`
	PublicationYear    int        `json:"publication_year"`
	ConferenceLocation string     `json:"conference_location"`
	StartPage          string     `json:"start_page"`
	EndPage            string     `json:"end_page"`
	Volume             string     `json:"volume"`
	IssueNumber        int        `json:"is_number"`
	HTMLURL            string     `json:"html_url"`
	Authors            AuthorList `json:"authors"`
}

// AuthorList wraps the API's nested author array.
type AuthorList struct {
	Authors []Author `json:"authors"`
}

// Author is one author record from the API.
type Author struct {
	FullName    string `json:"full_name"`
	AuthorOrder int    `json:"author_order"`
	Affiliation string `json:"affiliation"`
}
