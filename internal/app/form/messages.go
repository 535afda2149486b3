package form

type MessageKind string

const (
	KindSuccess MessageKind = "success"
	KindError   MessageKind = "error"
)

// Message is the status line shown under a form.
type Message struct {
	Text string      `json:"text"`
	Kind MessageKind `json:"kind,omitempty"`
}

func (m Message) IsZero() bool {
	return m.Text == ""
}

func (m Message) IsError() bool {
	return m.Kind == KindError
}

// Catalogue holds every user-facing string of the console for one locale.
// Created and ServerError are fmt templates taking one %s.
type Catalogue struct {
	Locale string

	FillAllFields   string
	EnterEmail      string
	Created         string
	Found           string
	ServerError     string
	ConnectionError string
	Throttled       string

	Title            string
	CreateHeading    string
	SearchHeading    string
	EmailLabel       string
	NameLabel        string
	SearchEmailLabel string
	EmailPlaceholder string
	NamePlaceholder  string
	CreateButton     string
	CreateButtonBusy string
	SearchButton     string
	SearchButtonBusy string
	ResultHeading    string
	ResultID         string
	ResultEmail      string
	ResultName       string
}

var French = Catalogue{
	Locale: "fr",

	FillAllFields:   "Veuillez remplir tous les champs",
	EnterEmail:      "Veuillez saisir un email",
	Created:         "Utilisateur créé avec succès! ID: %s",
	Found:           "Utilisateur trouvé!",
	ServerError:     "Erreur: %s",
	ConnectionError: "Erreur de connexion au serveur",
	Throttled:       "Trop de tentatives, veuillez réessayer plus tard",

	Title:            "Gestion des Utilisateurs",
	CreateHeading:    "Créer un Utilisateur",
	SearchHeading:    "Rechercher un Utilisateur",
	EmailLabel:       "Email:",
	NameLabel:        "Nom complet:",
	SearchEmailLabel: "Email à rechercher:",
	EmailPlaceholder: "exemple@email.com",
	NamePlaceholder:  "Prénom Nom",
	CreateButton:     "Créer l'utilisateur",
	CreateButtonBusy: "Création...",
	SearchButton:     "Rechercher",
	SearchButtonBusy: "Recherche...",
	ResultHeading:    "Utilisateur trouvé:",
	ResultID:         "ID:",
	ResultEmail:      "Email:",
	ResultName:       "Nom:",
}

var English = Catalogue{
	Locale: "en",

	FillAllFields:   "Please fill in all fields",
	EnterEmail:      "Please enter an email",
	Created:         "User created successfully! ID: %s",
	Found:           "User found!",
	ServerError:     "Error: %s",
	ConnectionError: "Could not connect to the server",
	Throttled:       "Too many attempts, please try again later",

	Title:            "User Management",
	CreateHeading:    "Create a User",
	SearchHeading:    "Find a User",
	EmailLabel:       "Email:",
	NameLabel:        "Full name:",
	SearchEmailLabel: "Email to look up:",
	EmailPlaceholder: "example@email.com",
	NamePlaceholder:  "First Last",
	CreateButton:     "Create user",
	CreateButtonBusy: "Creating...",
	SearchButton:     "Search",
	SearchButtonBusy: "Searching...",
	ResultHeading:    "User found:",
	ResultID:         "ID:",
	ResultEmail:      "Email:",
	ResultName:       "Name:",
}

// CatalogueFor returns the catalogue for locale, French when unknown.
func CatalogueFor(locale string) Catalogue {
	switch locale {
	case "en":
		return English
	default:
		return French
	}
}

func successMessage(text string) Message {
	return Message{Text: text, Kind: KindSuccess}
}

func errorMessage(text string) Message {
	return Message{Text: text, Kind: KindError}
}
