package facebook

// Post is a normalized group feed item.
type Post struct {
	ID          string    `json:"id"`
	Message     string    `json:"message"`
	ImageURL    string    `json:"image_url"` // top-level picture
	Images      []string  `json:"images"`    // attachment image sources, in feed order
	VideoURL    string    `json:"video_url"` // single video slot, last attachment wins
	Comments    []Comment `json:"comments"`
	CreatedTime string    `json:"created_time"`
}

// Comment is a normalized comment on a group post. Author may be empty
// when the API withholds the profile; consumers apply the fallback.
type Comment struct {
	Author      string `json:"author"`
	Message     string `json:"message"`
	CreatedTime string `json:"created_time"`
}

// Wire format of the Graph API feed endpoint.

type feedEnvelope struct {
	Data  []rawPost `json:"data"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

type rawPost struct {
	ID          string          `json:"id"`
	Message     string          `json:"message"`
	Picture     string          `json:"picture"`
	Attachments *attachmentList `json:"attachments"`
	Comments    *commentList    `json:"comments"`
	CreatedTime string          `json:"created_time"`
}

type attachmentList struct {
	Data []rawAttachment `json:"data"`
}

type rawAttachment struct {
	Media *rawMedia `json:"media"`
}

type rawMedia struct {
	Image       *rawImage `json:"image"`
	PlayableURL string    `json:"playable_url"`
}

type rawImage struct {
	Src string `json:"src"`
}

type commentList struct {
	Data []rawComment `json:"data"`
}

type rawComment struct {
	Message     string   `json:"message"`
	From        *rawFrom `json:"from"`
	CreatedTime string   `json:"created_time"`
}

type rawFrom struct {
	Name string `json:"name"`
}
