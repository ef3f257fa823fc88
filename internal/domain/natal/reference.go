package natal

import "slices"

// SignInfo is reference metadata for one sign.
type SignInfo struct {
	Number   int     `json:"number"`
	Name     Sign    `json:"name"`
	Sanskrit string  `json:"sanskrit"`
	Element  string  `json:"element"`
	Modality string  `json:"modality"`
	Ruler    Planet  `json:"ruler"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
}

// NakshatraInfo is reference metadata for one lunar mansion.
type NakshatraInfo struct {
	Number int     `json:"number"`
	Name   string  `json:"name"`
	Ruler  Planet  `json:"ruler"`
	Deity  string  `json:"deity"`
	Start  float64 `json:"start"`
	End    float64 `json:"end"`
}

type signRow struct {
	name     Sign
	sanskrit string
	element  string
	modality string
	ruler    Planet
}

var signTable = [12]signRow{
	{Aries, "Mesha", "Fire", "Cardinal", Mars},
	{Taurus, "Vrishabha", "Earth", "Fixed", Venus},
	{Gemini, "Mithuna", "Air", "Mutable", Mercury},
	{Cancer, "Karka", "Water", "Cardinal", Moon},
	{Leo, "Simha", "Fire", "Fixed", Sun},
	{Virgo, "Kanya", "Earth", "Mutable", Mercury},
	{Libra, "Tula", "Air", "Cardinal", Venus},
	{Scorpio, "Vrishchika", "Water", "Fixed", Mars},
	{Sagittarius, "Dhanu", "Fire", "Mutable", Jupiter},
	{Capricorn, "Makara", "Earth", "Cardinal", Saturn},
	{Aquarius, "Kumbha", "Air", "Fixed", Saturn},
	{Pisces, "Meena", "Water", "Mutable", Jupiter},
}

type nakshatraRow struct {
	name  string
	deity string
}

var nakshatraTable = [27]nakshatraRow{
	{"Ashwini", "Ashwini Kumaras"},
	{"Bharani", "Yama"},
	{"Krittika", "Agni"},
	{"Rohini", "Brahma"},
	{"Mrigashira", "Soma"},
	{"Ardra", "Rudra"},
	{"Punarvasu", "Aditi"},
	{"Pushya", "Brihaspati"},
	{"Ashlesha", "Nagas"},
	{"Magha", "Pitris"},
	{"Purva Phalguni", "Bhaga"},
	{"Uttara Phalguni", "Aryaman"},
	{"Hasta", "Savitar"},
	{"Chitra", "Vishwakarma"},
	{"Swati", "Vayu"},
	{"Vishakha", "Indra-Agni"},
	{"Anuradha", "Mitra"},
	{"Jyeshtha", "Indra"},
	{"Mula", "Nirriti"},
	{"Purva Ashada", "Apas"},
	{"Uttara Ashada", "Vishvadevas"},
	{"Shravana", "Vishnu"},
	{"Dhanishta", "Vasus"},
	{"Shatabhisha", "Varuna"},
	{"Purva Bhadrapada", "Aja Ekapad"},
	{"Uttara Bhadrapada", "Ahir Budhnya"},
	{"Revati", "Pushan"},
}

// nakshatraLords repeats every nine mansions.
var nakshatraLords = [9]Planet{Ketu, Venus, Sun, Moon, Mars, Rahu, Jupiter, Saturn, Mercury}

var exaltation = map[Planet]Sign{
	Sun: Aries, Moon: Taurus, Mars: Capricorn, Mercury: Virgo, Jupiter: Cancer,
	Venus: Pisces, Saturn: Libra, Rahu: Taurus, Ketu: Scorpio,
}

var debilitation = map[Planet]Sign{
	Sun: Libra, Moon: Scorpio, Mars: Cancer, Mercury: Pisces, Jupiter: Capricorn,
	Venus: Virgo, Saturn: Aries, Rahu: Scorpio, Ketu: Taurus,
}

type degreeRange struct {
	sign     Sign
	from, to float64
}

var moolatrikona = map[Planet]degreeRange{
	Sun:     {Leo, 0, 20},
	Moon:    {Taurus, 3, 30},
	Mars:    {Aries, 0, 12},
	Mercury: {Virgo, 15, 20},
	Jupiter: {Sagittarius, 0, 10},
	Venus:   {Libra, 0, 15},
	Saturn:  {Aquarius, 0, 20},
}

var ownership = map[Planet][]Sign{
	Sun:     {Leo},
	Moon:    {Cancer},
	Mars:    {Aries, Scorpio},
	Mercury: {Gemini, Virgo},
	Jupiter: {Sagittarius, Pisces},
	Venus:   {Taurus, Libra},
	Saturn:  {Capricorn, Aquarius},
}

var friends = map[Planet][]Planet{
	Sun:     {Moon, Mars, Jupiter},
	Moon:    {Sun, Mercury},
	Mars:    {Sun, Moon, Jupiter},
	Mercury: {Sun, Venus},
	Jupiter: {Sun, Moon, Mars},
	Venus:   {Mercury, Saturn},
	Saturn:  {Mercury, Venus},
	Rahu:    {Mercury, Venus, Saturn},
	Ketu:    {Mars, Jupiter},
}

var enemies = map[Planet][]Planet{
	Sun:     {Venus, Saturn, Rahu, Ketu},
	Moon:    {Rahu, Ketu},
	Mars:    {Mercury, Rahu, Ketu},
	Mercury: {Moon, Rahu, Ketu},
	Jupiter: {Mercury, Venus, Rahu, Ketu},
	Venus:   {Sun, Moon, Rahu, Ketu},
	Saturn:  {Sun, Moon, Mars, Rahu, Ketu},
	Rahu:    {Sun, Moon, Mars},
	Ketu:    {Sun, Moon},
}

// combustOrb holds the maximum Sun separation in degrees for direct and
// retrograde motion.
type combustOrb struct {
	direct     float64
	retrograde float64
}

var combustion = map[Planet]combustOrb{
	Moon:    {12, 12},
	Mars:    {17, 17},
	Mercury: {14, 12},
	Jupiter: {11, 11},
	Venus:   {10, 8},
	Saturn:  {15, 15},
}

// Signs returns reference metadata for the twelve signs in zodiac order.
func Signs() []SignInfo {
	out := make([]SignInfo, 0, len(signTable))
	for i, row := range signTable {
		out = append(out, SignInfo{
			Number:   i + 1,
			Name:     row.name,
			Sanskrit: row.sanskrit,
			Element:  row.element,
			Modality: row.modality,
			Ruler:    row.ruler,
			Start:    float64(i) * signSpan,
			End:      float64(i+1) * signSpan,
		})
	}
	return out
}

var nakshatraInfos = buildNakshatras()

// Nakshatras returns reference metadata for the 27 nakshatras in zodiac order.
func Nakshatras() []NakshatraInfo {
	return slices.Clone(nakshatraInfos)
}

func buildNakshatras() []NakshatraInfo {
	out := make([]NakshatraInfo, 0, len(nakshatraTable))
	for i, row := range nakshatraTable {
		out = append(out, NakshatraInfo{
			Number: i + 1,
			Name:   row.name,
			Ruler:  nakshatraLords[i%len(nakshatraLords)],
			Deity:  row.deity,
			Start:  float64(i) * nakshatraSpan,
			End:    float64(i+1) * nakshatraSpan,
		})
	}
	return out
}

// SignRuler returns the planet ruling s.
func SignRuler(s Sign) Planet {
	idx, ok := signIndex(s)
	if !ok {
		return ""
	}
	return signTable[idx].ruler
}

func signIndex(s Sign) (int, bool) {
	for i, row := range signTable {
		if row.name == s {
			return i, true
		}
	}
	return 0, false
}
