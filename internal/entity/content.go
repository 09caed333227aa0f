package entity

// Gallery is an ordered list of image URLs with an intro caption.
type Gallery struct {
	Caption string   `yaml:"caption" json:"caption"`
	Images  []string `yaml:"images" json:"images"`
}

// Content is the business content library used in replies.
type Content struct {
	BusinessName    string         `yaml:"business_name"`
	InstagramLink   string         `yaml:"instagram_link"`
	ReviewLink      string         `yaml:"review_link"`
	WelcomeText     string         `yaml:"welcome_text"`
	FeesText        string         `yaml:"fees_text"`
	TimingsText     string         `yaml:"timings_text"`
	LocationText    string         `yaml:"location_text"`
	ReviewText      string         `yaml:"review_text"`
	MainMenu        []ButtonOption `yaml:"main_menu"`
	MoreOptionsText string         `yaml:"more_options_text"`
	MoreOptions     []ButtonOption `yaml:"more_options"`
	VisitOptions    []ButtonOption `yaml:"visit_options"`
	GymPhotos       Gallery        `yaml:"gym_photos"`
	Transformations Gallery        `yaml:"transformations"`
}
