package kyc

import (
	"fmt"
	"time"
)

// identityGenerator derives stable fake identity data from a BVN, standing in
// for the external BVN lookup. The same BVN always resolves to the same
// person, which keeps verification reproducible across runs.
type identityGenerator struct {
	seed int32
}

var firstNames = []string{
	"Ade", "Ngozi", "Chinedu", "Fatima", "Oluwaseun", "Amina", "Emeka",
	"Ifeoma", "Tunde", "Nneka", "Olumide", "Hadiza", "Obinna", "Chidinma",
	"Bayo", "Adaeze", "Kunle", "Oluwakemi", "Uche", "Funke", "Temitope",
	"Nnamdi", "Blessing", "Oluwadamilola", "Chukwuemeka", "Zainab",
}

var lastNames = []string{
	"Adebayo", "Okafor", "Ibrahim", "Oluwatosin", "Eze", "Bello", "Adeyemi",
	"Nwankwo", "Salisu", "Okonkwo", "Adeleke", "Mohammed", "Ogunleye",
	"Chukwu", "Abubakar", "Afolabi", "Okeke", "Danjuma", "Adewale", "Nnamdi",
	"Okoro", "Usman", "Balogun", "Okechukwu", "Adeosun", "Yusuf",
}

var phonePrefixes = []string{
	"803", "806", "813", "816", "810", "814", "815",
	"901", "902", "903", "904", "905", "906", "907", "908", "909",
}

func newIdentityGenerator(bvn string) *identityGenerator {
	var seed int32
	for _, c := range bvn {
		seed = (seed << 5) - seed + int32(c)
	}
	return &identityGenerator{seed: seed}
}

func (g *identityGenerator) random() float64 {
	g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
	return float64(g.seed) / float64(0x7fffffff)
}

func (g *identityGenerator) pick(values []string) string {
	return values[int(g.random()*float64(len(values)))%len(values)]
}

func (g *identityGenerator) FirstName() string {
	return g.pick(firstNames)
}

func (g *identityGenerator) LastName() string {
	return g.pick(lastNames)
}

func (g *identityGenerator) DateOfBirth() string {
	age := 18 + int(g.random()*53)
	year := time.Now().Year() - age
	month := 1 + int(g.random()*12)
	day := 1 + int(g.random()*28)
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func (g *identityGenerator) PhoneNumber() string {
	prefix := g.pick(phonePrefixes)
	remaining := int(g.random() * 10000000)
	return fmt.Sprintf("+234%s%07d", prefix, remaining)
}
