package models

// Post is the document template stored in the posts indices. Fields a
// producer omits keep their zero value; Date stays null.
type Post struct {
	PostID       string  `json:"post_id"`
	PostTitle    string  `json:"post_title"`
	PostBody     string  `json:"post_body"`
	PostBodyFull string  `json:"post_body_full"`
	Date         *string `json:"date"`
	Likes        int     `json:"likes"`
	Retweets     int     `json:"retweets"`
	PostImageURL string  `json:"post_image_url"`
	PostImageB64 string  `json:"post_image_b64"`
	Location     string  `json:"location"`
	URL          string  `json:"url"`
	DisasterType string  `json:"disaster_type"`
	Source       string  `json:"source"`
	CreatedAt    string  `json:"createdAt"`
	Priority     string  `json:"priority,omitempty"`
}

// ObjIDField is the key under which a hit exposes its store identifier.
const ObjIDField = "objId"

// Hit is a stored document as returned by a search, with its store id
// copied into ObjIDField so callers can delete it later.
type Hit map[string]any

// NewHit annotates a document source with its id.
func NewHit(id string, source map[string]any) Hit {
	h := make(Hit, len(source)+1)
	for k, v := range source {
		h[k] = v
	}
	h[ObjIDField] = id
	return h
}

// ObjID returns the store identifier.
func (h Hit) ObjID() string {
	id, _ := h[ObjIDField].(string)
	return id
}

// Source returns the post's source field, or "" when missing.
func (h Hit) Source() string {
	s, _ := h["source"].(string)
	return s
}
