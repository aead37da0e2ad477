package seeder

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/Rana718/retailgen/internal/distribution"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type namePool struct {
	first []string
	last  []string
}

// Romanized given names and surnames per locale group.
var names = map[string]namePool{
	"en_US": {
		first: []string{"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda", "David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica"},
		last:  []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez", "Wilson", "Anderson", "Taylor", "Thomas", "Moore", "Jackson"},
	},
	"en_GB": {
		first: []string{"Oliver", "Amelia", "George", "Isla", "Harry", "Ava", "Jack", "Emily", "Charlie", "Sophie", "Thomas", "Grace", "Oscar", "Lily", "William", "Chloe"},
		last:  []string{"Smith", "Jones", "Taylor", "Brown", "Williams", "Wilson", "Johnson", "Davies", "Robinson", "Wright", "Thompson", "Evans", "Walker", "White", "Roberts", "O'Brien"},
	},
	"de": {
		first: []string{"Lukas", "Anna", "Jonas", "Lea", "Leon", "Hannah", "Felix", "Sophie", "Maximilian", "Marie", "Paul", "Lena", "Jürgen", "Käthe", "Björn", "Greta"},
		last:  []string{"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker", "Schulz", "Hoffmann", "Schäfer", "Koch", "Bauer", "Richter", "Klein", "Groß"},
	},
	"fr": {
		first: []string{"Gabriel", "Emma", "Louis", "Jade", "Raphaël", "Louise", "Jules", "Alice", "Hugo", "Chloé", "Arthur", "Léa", "Théo", "Manon", "Noé", "Hélène"},
		last:  []string{"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Leroy", "Moreau", "Simon", "Laurent", "Lefèvre", "Michel", "Garnier", "François"},
	},
	"it": {
		first: []string{"Leonardo", "Sofia", "Francesco", "Giulia", "Alessandro", "Aurora", "Lorenzo", "Alice", "Mattia", "Ginevra", "Andrea", "Emma", "Niccolò", "Giorgia", "Tommaso", "Beatrice"},
		last:  []string{"Rossi", "Russo", "Ferrari", "Esposito", "Bianchi", "Romano", "Colombo", "Ricci", "Marino", "Greco", "Bruno", "Gallo", "Conti", "De Luca", "Mancini", "Costa"},
	},
	"es": {
		first: []string{"Hugo", "Lucía", "Martín", "Sofía", "Pablo", "María", "Alejandro", "Martina", "Lucas", "Paula", "Mateo", "Julia", "José", "Valentina", "Diego", "Camila"},
		last:  []string{"García", "Rodríguez", "González", "Fernández", "López", "Martínez", "Sánchez", "Pérez", "Gómez", "Martín", "Jiménez", "Ruiz", "Hernández", "Díaz", "Moreno", "Muñoz"},
	},
	"pt": {
		first: []string{"Miguel", "Helena", "Arthur", "Alice", "Gael", "Laura", "Heitor", "Manuela", "Théo", "Valentina", "Davi", "Sophia", "João", "Isabella", "Pedro", "Lívia"},
		last:  []string{"Silva", "Santos", "Oliveira", "Souza", "Rodrigues", "Ferreira", "Alves", "Pereira", "Lima", "Gomes", "Costa", "Ribeiro", "Martins", "Carvalho", "Araújo", "Conceição"},
	},
	"nl": {
		first: []string{"Noah", "Emma", "Sem", "Julia", "Liam", "Mila", "Lucas", "Tess", "Daan", "Sophie", "Finn", "Zoë", "Levi", "Sara", "Bram", "Anouk"},
		last:  []string{"de Jong", "Jansen", "de Vries", "van den Berg", "van Dijk", "Bakker", "Janssen", "Visser", "Smit", "Meijer", "de Boer", "Mulder", "de Groot", "Bos", "Vos", "Peters"},
	},
	"nordic": {
		first: []string{"Lars", "Ingrid", "Erik", "Astrid", "Nils", "Freja", "Søren", "Maja", "Mikael", "Elsa", "Jonas", "Saga", "Björn", "Aino", "Oskar", "Sigrid"},
		last:  []string{"Andersson", "Johansson", "Karlsson", "Nilsson", "Hansen", "Jensen", "Nielsen", "Larsen", "Olsen", "Virtanen", "Korhonen", "Mäkinen", "Sørensen", "Lindqvist", "Berg", "Haugen"},
	},
	"pl": {
		first: []string{"Jakub", "Zuzanna", "Antoni", "Julia", "Jan", "Zofia", "Łukasz", "Hanna", "Tomáš", "Maja", "Piotr", "Alicja", "Wojciech", "Lena", "Jiří", "Agnieszka"},
		last:  []string{"Nowak", "Kowalski", "Wiśniewski", "Wójcik", "Kowalczyk", "Kamiński", "Lewandowski", "Zieliński", "Szymański", "Woźniak", "Dąbrowski", "Novák", "Svoboda", "Dvořák", "Černý", "Procházka"},
	},
	"ru": {
		first: []string{"Aleksandr", "Anastasia", "Dmitry", "Maria", "Maxim", "Anna", "Sergey", "Elena", "Ivan", "Olga", "Andrey", "Tatiana", "Nikolai", "Natalia", "Mikhail", "Yulia"},
		last:  []string{"Ivanov", "Smirnov", "Kuznetsov", "Popov", "Vasiliev", "Petrov", "Sokolov", "Mikhailov", "Novikov", "Fedorov", "Morozov", "Volkov", "Alekseev", "Lebedev", "Semenov", "Egorov"},
	},
	"tr": {
		first: []string{"Yusuf", "Zeynep", "Eymen", "Elif", "Ömer", "Defne", "Mustafa", "Azra", "Emir", "Asel", "Kerem", "Eylül", "Çağan", "Ayşe", "Mehmet", "Şule"},
		last:  []string{"Yılmaz", "Kaya", "Demir", "Şahin", "Çelik", "Yıldız", "Yıldırım", "Öztürk", "Aydın", "Özdemir", "Arslan", "Doğan", "Kılıç", "Aslan", "Çetin", "Kara"},
	},
	"ar": {
		first: []string{"Mohammed", "Fatima", "Ahmed", "Aisha", "Abdullah", "Maryam", "Omar", "Noura", "Khalid", "Layla", "Faisal", "Sara", "Youssef", "Huda", "Saeed", "Reem"},
		last:  []string{"Al-Saud", "Al-Harbi", "Al-Qahtani", "Al-Ghamdi", "Al-Zahrani", "Al-Otaibi", "Al-Mutairi", "Al-Shehri", "Haddad", "Khalil", "Nasser", "Mansour", "Hassan", "Saleh", "Al-Mansoori", "Al-Hashimi"},
	},
	"in": {
		first: []string{"Aarav", "Ananya", "Vivaan", "Diya", "Aditya", "Saanvi", "Arjun", "Isha", "Rohan", "Priya", "Imran", "Ayesha", "Rahul", "Fatima", "Sanjay", "Nusrat"},
		last:  []string{"Sharma", "Verma", "Gupta", "Singh", "Kumar", "Patel", "Reddy", "Iyer", "Nair", "Khan", "Ahmed", "Chowdhury", "Hossain", "Rahman", "Malik", "Das"},
	},
	"zh": {
		first: []string{"Wei", "Fang", "Lei", "Xiu Ying", "Jun", "Min", "Yong", "Jing", "Jie", "Li Na", "Hao", "Yan", "Tao", "Ming", "Chen", "Hui"},
		last:  []string{"Wang", "Li", "Zhang", "Liu", "Chen", "Yang", "Huang", "Zhao", "Wu", "Zhou", "Xu", "Sun", "Ma", "Zhu", "Hu", "Lin"},
	},
	"ja": {
		first: []string{"Haruto", "Yui", "Sota", "Hina", "Yuto", "Sakura", "Riku", "Aoi", "Ren", "Mei", "Kaito", "Yuna", "Takumi", "Rin", "Shota", "Akari"},
		last:  []string{"Sato", "Suzuki", "Takahashi", "Tanaka", "Watanabe", "Ito", "Yamamoto", "Nakamura", "Kobayashi", "Kato", "Yoshida", "Yamada", "Sasaki", "Yamaguchi", "Matsumoto", "Inoue"},
	},
	"ko": {
		first: []string{"Min-jun", "Seo-yeon", "Seo-jun", "Ji-woo", "Do-yun", "Ha-eun", "Ye-jun", "Min-seo", "Si-woo", "Su-ah", "Ju-won", "Ji-yoo", "Ha-jun", "Yu-na", "Ji-ho", "Chae-won"},
		last:  []string{"Kim", "Lee", "Park", "Choi", "Jung", "Kang", "Cho", "Yoon", "Jang", "Lim", "Han", "Oh", "Seo", "Shin", "Kwon", "Hwang"},
	},
	"id": {
		first: []string{"Budi", "Siti", "Agus", "Dewi", "Andi", "Putri", "Rizky", "Nurul", "Somchai", "Ploy", "Ahmad", "Nur", "Hafiz", "Aisyah", "Krit", "Malee"},
		last:  []string{"Santoso", "Wijaya", "Saputra", "Hidayat", "Kusuma", "Pratama", "Setiawan", "Nugroho", "Tan", "Lim", "Abdullah", "Ismail", "Rahman", "Srisuk", "Wongsakul", "Chaiyaporn"},
	},
}

// wordPool backs random (non name-based) email local parts.
var wordPool = []string{
	"sunny", "blue", "tiger", "maple", "river", "pixel", "coffee", "rocket",
	"silver", "ocean", "falcon", "cloud", "forest", "lucky", "ninja", "panda",
	"shadow", "spark", "storm", "velvet", "happy", "crystal", "dragon", "echo",
}

// Letters that carry no decomposition to strip.
var letterFold = strings.NewReplacer(
	"ł", "l", "Ł", "L", "ø", "o", "Ø", "O", "ß", "ss", "æ", "ae", "Æ", "AE",
	"đ", "d", "Đ", "D", "ı", "i", "œ", "oe",
)

// localPart reduces a name to characters that are safe in an email address.
func localPart(s string) string {
	// Chains carry buffers, so each call gets its own.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, letterFold.Replace(s))
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Faker renders the free-text fields of a customer registration.
type Faker struct {
	model *distribution.Model
	end   time.Time
}

func NewFaker(model *distribution.Model, end time.Time) *Faker {
	return &Faker{model: model, end: end}
}

func (f *Faker) Name(r *rand.Rand, locale string) (string, string) {
	pool, ok := names[locale]
	if !ok {
		pool = names["en_US"]
	}
	return pool.first[r.IntN(len(pool.first))], pool.last[r.IntN(len(pool.last))]
}

// BirthDate draws a date of birth for someone aged 18 to 90 on the end date.
func (f *Faker) BirthDate(r *rand.Rand) time.Time {
	latest := f.end.AddDate(-18, 0, 0)
	earliest := f.end.AddDate(-91, 0, 1)
	days := int(latest.Sub(earliest).Hours() / 24)
	return earliest.AddDate(0, 0, r.IntN(days+1))
}

// Email returns an address at a weighted domain. With the model's name-based
// probability the local part is built from the (possibly misspelled) name and
// surname, optionally followed by the birth year or random digits. birthYear
// is zero when no birth date is known.
func (f *Faker) Email(r *rand.Rand, name, surname string, birthYear int) string {
	domain := f.model.EmailDomain(r)
	first, last := localPart(name), localPart(surname)

	if first == "" || last == "" || !f.model.FieldPresent(r, f.model.Rates().NameBasedEmail) {
		word := wordPool[r.IntN(len(wordPool))]
		return word + strconv.Itoa(r.IntN(9900)+100) + "@" + domain
	}

	suffix := ""
	if birthYear > 0 {
		year := strconv.Itoa(birthYear)
		if r.Float64() < 0.7 {
			suffix = year[len(year)-2:]
		} else {
			suffix = year
		}
	} else if r.Float64() < 0.3 {
		suffix = strconv.Itoa(r.IntN(100))
		if len(suffix) == 1 {
			suffix = "0" + suffix
		}
	}

	var user string
	switch r.IntN(6) {
	case 0:
		user = first + "." + last
	case 1:
		user = first[:1] + last
	case 2:
		user = first + last[:1]
	case 3:
		user = last + "." + first
	case 4:
		user = first[:1] + last + suffix
	default:
		user = first + suffix
	}
	if len(user) < 5 && suffix == "" {
		user += strconv.Itoa(r.IntN(900) + 100)
	}
	return user + "@" + domain
}

// Phone formats a random national number in one of four styles.
func (f *Faker) Phone(r *rand.Rand, country distribution.CountryProfile) string {
	area := strconv.Itoa(r.IntN(900) + 100)
	exchange := strconv.Itoa(r.IntN(900) + 100)
	line := strconv.Itoa(r.IntN(10000))
	for len(line) < 4 {
		line = "0" + line
	}

	switch r.IntN(4) {
	case 0:
		return "+" + country.CallingCode + " " + area + " " + exchange + " " + line
	case 1:
		return area + exchange + line
	case 2:
		return "(" + area + ") " + exchange + " " + line
	default:
		return area + "-" + exchange + "-" + line
	}
}
