package mail

type AlertEmailData struct {
	BusinessName string
	Title        string
	Name         string
	Phone        string
	VisitTime    string
	At           string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
