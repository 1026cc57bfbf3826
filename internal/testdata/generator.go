package testdata

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/jask/userdesk/internal/users"
)

var (
	firstNames = []string{"Ada", "Grace", "Linus", "Ken", "Barbara", "Dennis", "Margaret", "Alan", "Radia", "Guido"}
	lastNames  = []string{"Lovelace", "Hopper", "Torvalds", "Thompson", "Liskov", "Ritchie", "Hamilton", "Turing", "Perlman", "Rossum"}
	domains    = []string{"example.com", "example.org", "corp.io", "mail.test"}
	streets    = []string{"Main St", "High St", "Station Rd", "Mill Lane", "Park Ave"}
)

// Users generates n distinct sample payloads. The same seed always yields
// the same records; usernames carry a numeric suffix so they never collide.
func Users(n int, seed int64) []users.Payload {
	r := rand.New(rand.NewSource(seed))
	out := make([]users.Payload, 0, n)
	for i := range n {
		first := firstNames[r.Intn(len(firstNames))]
		last := lastNames[r.Intn(len(lastNames))]
		username := fmt.Sprintf("%s%d", strings.ToLower(first[:1]+last), i+1)
		p := users.Payload{
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, domains[r.Intn(len(domains))]),
			Password: fmt.Sprintf("pw-%06d", r.Intn(1_000_000)),
			FullName: first + " " + last,
		}
		// Optional fields are left blank on some rows, as real data would.
		if r.Intn(4) > 0 {
			p.DOB = fmt.Sprintf("%d-%02d-%02d", 1950+r.Intn(55), 1+r.Intn(12), 1+r.Intn(28))
		}
		if r.Intn(3) > 0 {
			p.Phone = fmt.Sprintf("555-%04d", r.Intn(10000))
		}
		if r.Intn(2) > 0 {
			p.Address = fmt.Sprintf("%d %s", 1+r.Intn(200), streets[r.Intn(len(streets))])
		}
		out = append(out, p)
	}
	return out
}
