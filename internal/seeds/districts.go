package seeds

import (
	"log"

	"github.com/JanDarpan/JD-Backend/internal/db"
	"github.com/JanDarpan/JD-Backend/internal/districts"
	"github.com/lib/pq"
)

type districtSeed struct {
	code       string
	name       string
	nameHindi  string
	aliases    []string
	lat, lon   float64
	population int64
	households int64
}

// Gujarat directory with centroid coordinates. Aliases cover spellings used
// by external geolocation services and the upstream open-data resource.
var gujaratDistricts = []districtSeed{
	{"GJ01", "Ahmedabad", "अहमदाबाद", []string{"Ahmadabad"}, 23.0225, 72.5714, 7410000, 1200000},
	{"GJ02", "Amreli", "अमरेली", nil, 21.6000, 71.2000, 1514000, 240000},
	{"GJ03", "Anand", "आनंद", nil, 22.5600, 72.9500, 2090000, 330000},
	{"GJ04", "Aravalli", "अरवल्ली", []string{"Arvalli"}, 23.5000, 73.0000, 1052000, 170000},
	{"GJ05", "Banaskantha", "बनासकांठा", []string{"Banas Kantha"}, 24.2500, 72.5000, 3120000, 500000},
	{"GJ06", "Bharuch", "भरूच", []string{"Broach"}, 21.7000, 72.9667, 1550000, 250000},
	{"GJ07", "Bhavnagar", "भावनगर", nil, 21.7667, 72.1500, 2880000, 460000},
	{"GJ08", "Botad", "बोटाद", nil, 22.1700, 71.6700, 656000, 105000},
	{"GJ09", "Chhota Udaipur", "छोटा उदयपुर", []string{"Chhota Udepur"}, 22.3200, 74.0000, 1072000, 170000},
	{"GJ10", "Dahod", "दाहोद", []string{"Dohad"}, 22.8300, 74.2600, 2127000, 340000},
	{"GJ11", "Dang", "डांग", []string{"The Dangs"}, 20.7500, 73.7500, 228000, 36000},
	{"GJ12", "Devbhoomi Dwarka", "देवभूमि द्वारका", []string{"Devbhumi Dwarka"}, 22.2400, 69.6500, 752000, 120000},
	{"GJ13", "Gandhinagar", "गांधीनगर", nil, 23.2156, 72.6369, 1387000, 220000},
	{"GJ14", "Gir Somnath", "गिर सोमनाथ", nil, 20.9100, 70.3700, 1217000, 195000},
	{"GJ15", "Jamnagar", "जामनगर", nil, 22.4700, 70.0700, 2160000, 345000},
	{"GJ16", "Junagadh", "जूनागढ़", nil, 21.5200, 70.4700, 2743000, 440000},
	{"GJ17", "Kheda", "खेड़ा", []string{"Kaira"}, 22.7500, 72.6833, 2299000, 370000},
	{"GJ18", "Kutch", "कच्छ", []string{"Kachchh"}, 23.7000, 70.9000, 2090000, 335000},
	{"GJ19", "Mahisagar", "महिसागर", nil, 23.1000, 73.3500, 994000, 160000},
	{"GJ20", "Mehsana", "मेहसाणा", []string{"Mahesana"}, 23.6000, 72.4000, 2027000, 325000},
	{"GJ21", "Morbi", "मोरबी", nil, 22.8200, 70.8400, 961000, 155000},
	{"GJ22", "Narmada", "नर्मदा", nil, 21.8700, 73.5000, 590000, 95000},
	{"GJ23", "Navsari", "नवसारी", nil, 20.9500, 72.9300, 1331000, 210000},
	{"GJ24", "Panchmahal", "पंचमहल", []string{"Panch Mahals"}, 22.7500, 73.6000, 2391000, 380000},
	{"GJ25", "Patan", "पाटन", nil, 23.8500, 72.1300, 1343000, 215000},
	{"GJ26", "Porbandar", "पोरबंदर", nil, 21.6417, 69.6042, 586000, 95000},
	{"GJ27", "Rajkot", "राजकोट", nil, 22.3000, 70.7833, 3805000, 610000},
	{"GJ28", "Sabarkantha", "साबरकांठा", []string{"Sabar Kantha"}, 23.5000, 73.0000, 2428000, 390000},
	{"GJ29", "Surat", "सूरत", nil, 21.1702, 72.8311, 6081000, 970000},
	{"GJ30", "Surendranagar", "सुरेंद्रनगर", nil, 22.7200, 71.6500, 1756000, 280000},
	{"GJ31", "Tapi", "तापी", nil, 21.1200, 73.4000, 807000, 130000},
	{"GJ32", "Vadodara", "वडोदरा", []string{"Baroda"}, 22.3000, 73.2000, 4165000, 665000},
	{"GJ33", "Valsad", "वलसाड", nil, 20.3800, 72.9000, 1705000, 270000},
}

// SeedDistricts fills the district directory once. An already-populated
// directory is left untouched; districts are effectively immutable after
// provisioning.
func SeedDistricts() error {
	var count int64
	if err := db.DB.Model(&districts.District{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Printf("Districts already present (%d), skipping seed", count)
		return nil
	}

	for _, s := range gujaratDistricts {
		lat, lon := s.lat, s.lon
		d := districts.District{
			State:       "Gujarat",
			Code:        s.code,
			Name:        s.name,
			NameHindi:   s.nameHindi,
			Aliases:     pq.StringArray(s.aliases),
			CentroidLat: &lat,
			CentroidLon: &lon,
			Population:  s.population,
			Households:  s.households,
		}
		if err := db.DB.Create(&d).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d districts", len(gujaratDistricts))
	return nil
}
