// Package schema holds the entity shapes stored by the site API. Each struct
// field carries its constraints as tags:
//
//	validate  go-playground/validator rules (required, http_url, dive)
//	default   value applied by ApplyDefaults when the field is absent
//
// Required text fields are pointers: "required" means present and not null,
// so an empty string is accepted. Lists always default to empty, never null.
package schema

// Collection names. They match CollectionOf for the corresponding type.
const (
	InquiryCollection    = "inquiry"
	CaseStudyCollection  = "casestudy"
	JobOpeningCollection = "jobopening"
	TeamMemberCollection = "teammember"
)

// Inquiry is a contact/quote form submission.
type Inquiry struct {
	Name    *string `json:"name" bson:"name" validate:"required"`
	Company *string `json:"company" bson:"company"`
	Email   *string `json:"email" bson:"email" validate:"required"`
	Phone   *string `json:"phone" bson:"phone"`
	Subject *string `json:"subject" bson:"subject"`
	Message *string `json:"message" bson:"message" validate:"required"`
}

// CaseStudy is a portfolio entry.
type CaseStudy struct {
	Title       *string  `json:"title" bson:"title" validate:"required"`
	Client      *string  `json:"client" bson:"client"`
	Services    []string `json:"services" bson:"services"`
	Materials   []string `json:"materials" bson:"materials"`
	Description *string  `json:"description" bson:"description"`
	Challenges  *string  `json:"challenges" bson:"challenges"`
	Solutions   *string  `json:"solutions" bson:"solutions"`
	Specs       *string  `json:"specs" bson:"specs"`
	Images      []string `json:"images" bson:"images" validate:"dive,http_url"`
}

// JobOpening is a careers posting.
type JobOpening struct {
	Title        *string  `json:"title" bson:"title" validate:"required"`
	Location     *string  `json:"location" bson:"location" default:"Horka nad Moravou, Czech Republic"`
	Type         *string  `json:"type" bson:"type" default:"Full-time"`
	Description  *string  `json:"description" bson:"description"`
	Requirements []string `json:"requirements" bson:"requirements"`
	Benefits     []string `json:"benefits" bson:"benefits"`
}

// TeamMember is an entry of the team page.
type TeamMember struct {
	Name  *string `json:"name" bson:"name" validate:"required"`
	Role  *string `json:"role" bson:"role" validate:"required"`
	Bio   *string `json:"bio" bson:"bio"`
	Photo *string `json:"photo" bson:"photo" validate:"omitempty,http_url"`
	Email *string `json:"email" bson:"email"`
}
