package models

// Claims is the flattened identity returned by the auth provider after
// verifying a bearer token. UID is always present; the rest depends on the
// sign-in method.
type Claims struct {
	UID     string `json:"uid"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
}

// Collaborator is one entry in a JD's collaborators list. Email-only entries
// are pending invites; UID is stamped once the invitee signs in.
type Collaborator struct {
	Email string `json:"email" firestore:"email"`
	UID   string `json:"uid,omitempty" firestore:"uid,omitempty"`
	Role  string `json:"role,omitempty" firestore:"role,omitempty"`
}

// JobDescription is the create payload for a JD. The owner uid and the
// server timestamps are filled in by the store, never by the caller.
type JobDescription struct {
	Title              string         `json:"title" firestore:"title"`
	CompanyName        string         `json:"companyName" firestore:"companyName"`
	TeamName           string         `json:"teamName" firestore:"teamName"`
	JobRole            string         `json:"jobRole" firestore:"jobRole"`
	Location           string         `json:"location" firestore:"location"`
	Scale              string         `json:"scale" firestore:"scale"`
	Vision             string         `json:"vision" firestore:"vision"`
	Mission            string         `json:"mission" firestore:"mission"`
	Responsibilities   []string       `json:"responsibilities" firestore:"responsibilities"`
	Requirements       []string       `json:"requirements" firestore:"requirements"`
	Preferred          []string       `json:"preferred" firestore:"preferred"`
	Benefits           []string       `json:"benefits" firestore:"benefits"`
	CollaboratorIDs    []string       `json:"collaboratorIds" firestore:"collaboratorIds"`
	CollaboratorEmails []string       `json:"collaboratorEmails" firestore:"collaboratorEmails"`
	Collaborators      []Collaborator `json:"collaborators" firestore:"collaborators"`
}

// JDPatch is the partial-update payload for a JD. A nil field is "leave
// untouched"; a non-nil field overwrites the stored value. JSON null decodes
// to nil, so explicit nulls are also left untouched.
type JDPatch struct {
	Title              *string         `json:"title"`
	CompanyName        *string         `json:"companyName"`
	TeamName           *string         `json:"teamName"`
	JobRole            *string         `json:"jobRole"`
	Location           *string         `json:"location"`
	Scale              *string         `json:"scale"`
	Vision             *string         `json:"vision"`
	Mission            *string         `json:"mission"`
	Responsibilities   *[]string       `json:"responsibilities"`
	Requirements       *[]string       `json:"requirements"`
	Preferred          *[]string       `json:"preferred"`
	Benefits           *[]string       `json:"benefits"`
	CollaboratorIDs    *[]string       `json:"collaboratorIds"`
	CollaboratorEmails *[]string       `json:"collaboratorEmails"`
	Collaborators      *[]Collaborator `json:"collaborators"`
}

// Changes returns the field-path map of everything the patch actually sets.
func (p *JDPatch) Changes() map[string]interface{} {
	out := map[string]interface{}{}
	if p.Title != nil {
		out["title"] = *p.Title
	}
	if p.CompanyName != nil {
		out["companyName"] = *p.CompanyName
	}
	if p.TeamName != nil {
		out["teamName"] = *p.TeamName
	}
	if p.JobRole != nil {
		out["jobRole"] = *p.JobRole
	}
	if p.Location != nil {
		out["location"] = *p.Location
	}
	if p.Scale != nil {
		out["scale"] = *p.Scale
	}
	if p.Vision != nil {
		out["vision"] = *p.Vision
	}
	if p.Mission != nil {
		out["mission"] = *p.Mission
	}
	if p.Responsibilities != nil {
		out["responsibilities"] = *p.Responsibilities
	}
	if p.Requirements != nil {
		out["requirements"] = *p.Requirements
	}
	if p.Preferred != nil {
		out["preferred"] = *p.Preferred
	}
	if p.Benefits != nil {
		out["benefits"] = *p.Benefits
	}
	if p.CollaboratorIDs != nil {
		out["collaboratorIds"] = *p.CollaboratorIDs
	}
	if p.CollaboratorEmails != nil {
		out["collaboratorEmails"] = *p.CollaboratorEmails
	}
	if p.Collaborators != nil {
		out["collaborators"] = *p.Collaborators
	}
	return out
}

// Attachment is a file uploaded against a JD, stored in the bucket and
// referenced from the JD document.
type Attachment struct {
	Name       string `json:"name" firestore:"name"`
	URL        string `json:"url" firestore:"url"`
	UploadedBy string `json:"uploadedBy" firestore:"uploadedBy"`
}

// ChatTurn is one prior message in a chat exchange. Role is "user" for the
// human side; anything else is treated as the model's side.
type ChatTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatReply is the reshaped model output returned to the frontend.
type ChatReply struct {
	AIResponse string                 `json:"aiResponse"`
	Options    []string               `json:"options"`
	JDData     map[string]interface{} `json:"jdData"`
}
