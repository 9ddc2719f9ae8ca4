package language

import (
	"slices"
	"strings"
)

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-2/T (3-letter terminology code)
	alt3    string   // ISO 639-2/B where it differs (e.g. "fre" vs "fra")
	tags    []string // other 3-letter codes stream tags use for this language
	display string
}

// languages covers every ISO 639-1 code plus the catalog-specific "cn"
// (Cantonese). Cantonese and Serbo-Croatian audio is commonly tagged with a
// neighbouring code, listed in tags.
var languages = []entry{
	{"aa", "aar", "", nil, "Afar"},
	{"ab", "abk", "", nil, "Abkhazian"},
	{"ae", "ave", "", nil, "Avestan"},
	{"af", "afr", "", nil, "Afrikaans"},
	{"ak", "aka", "", nil, "Akan"},
	{"am", "amh", "", nil, "Amharic"},
	{"an", "arg", "", nil, "Aragonese"},
	{"ar", "ara", "", nil, "Arabic"},
	{"as", "asm", "", nil, "Assamese"},
	{"av", "ava", "", nil, "Avaric"},
	{"ay", "aym", "", nil, "Aymara"},
	{"az", "aze", "", nil, "Azerbaijani"},
	{"ba", "bak", "", nil, "Bashkir"},
	{"be", "bel", "", nil, "Belarusian"},
	{"bg", "bul", "", nil, "Bulgarian"},
	{"bh", "bih", "", nil, "Bihari"},
	{"bi", "bis", "", nil, "Bislama"},
	{"bm", "bam", "", nil, "Bambara"},
	{"bn", "ben", "", nil, "Bengali"},
	{"bo", "bod", "tib", nil, "Tibetan"},
	{"br", "bre", "", nil, "Breton"},
	{"bs", "bos", "", nil, "Bosnian"},
	{"ca", "cat", "", nil, "Catalan"},
	{"ce", "che", "", nil, "Chechen"},
	{"ch", "cha", "", nil, "Chamorro"},
	{"cn", "zho", "chi", []string{"yue"}, "Cantonese"},
	{"co", "cos", "", nil, "Corsican"},
	{"cr", "cre", "", nil, "Cree"},
	{"cs", "ces", "cze", nil, "Czech"},
	{"cu", "chu", "", nil, "Church Slavic"},
	{"cv", "chv", "", nil, "Chuvash"},
	{"cy", "cym", "wel", nil, "Welsh"},
	{"da", "dan", "", nil, "Danish"},
	{"de", "deu", "ger", nil, "German"},
	{"dv", "div", "", nil, "Divehi"},
	{"dz", "dzo", "", nil, "Dzongkha"},
	{"ee", "ewe", "", nil, "Ewe"},
	{"el", "ell", "gre", nil, "Greek"},
	{"en", "eng", "", nil, "English"},
	{"eo", "epo", "", nil, "Esperanto"},
	{"es", "spa", "", nil, "Spanish"},
	{"et", "est", "", nil, "Estonian"},
	{"eu", "eus", "baq", nil, "Basque"},
	{"fa", "fas", "per", nil, "Persian"},
	{"ff", "ful", "", nil, "Fulah"},
	{"fi", "fin", "", nil, "Finnish"},
	{"fj", "fij", "", nil, "Fijian"},
	{"fo", "fao", "", nil, "Faroese"},
	{"fr", "fra", "fre", nil, "French"},
	{"fy", "fry", "", nil, "Western Frisian"},
	{"ga", "gle", "", nil, "Irish"},
	{"gd", "gla", "", nil, "Scottish Gaelic"},
	{"gl", "glg", "", nil, "Galician"},
	{"gn", "grn", "", nil, "Guarani"},
	{"gu", "guj", "", nil, "Gujarati"},
	{"gv", "glv", "", nil, "Manx"},
	{"ha", "hau", "", nil, "Hausa"},
	{"he", "heb", "", nil, "Hebrew"},
	{"hi", "hin", "", nil, "Hindi"},
	{"ho", "hmo", "", nil, "Hiri Motu"},
	{"hr", "hrv", "", nil, "Croatian"},
	{"ht", "hat", "", nil, "Haitian"},
	{"hu", "hun", "", nil, "Hungarian"},
	{"hy", "hye", "arm", nil, "Armenian"},
	{"hz", "her", "", nil, "Herero"},
	{"ia", "ina", "", nil, "Interlingua"},
	{"id", "ind", "", nil, "Indonesian"},
	{"ie", "ile", "", nil, "Interlingue"},
	{"ig", "ibo", "", nil, "Igbo"},
	{"ii", "iii", "", nil, "Sichuan Yi"},
	{"ik", "ipk", "", nil, "Inupiaq"},
	{"io", "ido", "", nil, "Ido"},
	{"is", "isl", "ice", nil, "Icelandic"},
	{"it", "ita", "", nil, "Italian"},
	{"iu", "iku", "", nil, "Inuktitut"},
	{"ja", "jpn", "", nil, "Japanese"},
	{"jv", "jav", "", nil, "Javanese"},
	{"ka", "kat", "geo", nil, "Georgian"},
	{"kg", "kon", "", nil, "Kongo"},
	{"ki", "kik", "", nil, "Kikuyu"},
	{"kj", "kua", "", nil, "Kuanyama"},
	{"kk", "kaz", "", nil, "Kazakh"},
	{"kl", "kal", "", nil, "Kalaallisut"},
	{"km", "khm", "", nil, "Khmer"},
	{"kn", "kan", "", nil, "Kannada"},
	{"ko", "kor", "", nil, "Korean"},
	{"kr", "kau", "", nil, "Kanuri"},
	{"ks", "kas", "", nil, "Kashmiri"},
	{"ku", "kur", "", nil, "Kurdish"},
	{"kv", "kom", "", nil, "Komi"},
	{"kw", "cor", "", nil, "Cornish"},
	{"ky", "kir", "", nil, "Kyrgyz"},
	{"la", "lat", "", nil, "Latin"},
	{"lb", "ltz", "", nil, "Luxembourgish"},
	{"lg", "lug", "", nil, "Ganda"},
	{"li", "lim", "", nil, "Limburgish"},
	{"ln", "lin", "", nil, "Lingala"},
	{"lo", "lao", "", nil, "Lao"},
	{"lt", "lit", "", nil, "Lithuanian"},
	{"lu", "lub", "", nil, "Luba-Katanga"},
	{"lv", "lav", "", nil, "Latvian"},
	{"mg", "mlg", "", nil, "Malagasy"},
	{"mh", "mah", "", nil, "Marshallese"},
	{"mi", "mri", "mao", nil, "Maori"},
	{"mk", "mkd", "mac", nil, "Macedonian"},
	{"ml", "mal", "", nil, "Malayalam"},
	{"mn", "mon", "", nil, "Mongolian"},
	{"mr", "mar", "", nil, "Marathi"},
	{"ms", "msa", "may", nil, "Malay"},
	{"mt", "mlt", "", nil, "Maltese"},
	{"my", "mya", "bur", nil, "Burmese"},
	{"na", "nau", "", nil, "Nauru"},
	{"nb", "nob", "", nil, "Norwegian Bokmål"},
	{"nd", "nde", "", nil, "North Ndebele"},
	{"ne", "nep", "", nil, "Nepali"},
	{"ng", "ndo", "", nil, "Ndonga"},
	{"nl", "nld", "dut", nil, "Dutch"},
	{"nn", "nno", "", nil, "Norwegian Nynorsk"},
	{"no", "nor", "", nil, "Norwegian"},
	{"nr", "nbl", "", nil, "South Ndebele"},
	{"nv", "nav", "", nil, "Navajo"},
	{"ny", "nya", "", nil, "Chichewa"},
	{"oc", "oci", "", nil, "Occitan"},
	{"oj", "oji", "", nil, "Ojibwa"},
	{"om", "orm", "", nil, "Oromo"},
	{"or", "ori", "", nil, "Oriya"},
	{"os", "oss", "", nil, "Ossetian"},
	{"pa", "pan", "", nil, "Punjabi"},
	{"pi", "pli", "", nil, "Pali"},
	{"pl", "pol", "", nil, "Polish"},
	{"ps", "pus", "", nil, "Pashto"},
	{"pt", "por", "", nil, "Portuguese"},
	{"qu", "que", "", nil, "Quechua"},
	{"rm", "roh", "", nil, "Romansh"},
	{"rn", "run", "", nil, "Rundi"},
	{"ro", "ron", "rum", nil, "Romanian"},
	{"ru", "rus", "", nil, "Russian"},
	{"rw", "kin", "", nil, "Kinyarwanda"},
	{"sa", "san", "", nil, "Sanskrit"},
	{"sc", "srd", "", nil, "Sardinian"},
	{"sd", "snd", "", nil, "Sindhi"},
	{"se", "sme", "", nil, "Northern Sami"},
	{"sg", "sag", "", nil, "Sango"},
	{"sh", "hbs", "", []string{"srp", "hrv", "bos"}, "Serbo-Croatian"},
	{"si", "sin", "", nil, "Sinhala"},
	{"sk", "slk", "slo", nil, "Slovak"},
	{"sl", "slv", "", nil, "Slovenian"},
	{"sm", "smo", "", nil, "Samoan"},
	{"sn", "sna", "", nil, "Shona"},
	{"so", "som", "", nil, "Somali"},
	{"sq", "sqi", "alb", nil, "Albanian"},
	{"sr", "srp", "", nil, "Serbian"},
	{"ss", "ssw", "", nil, "Swati"},
	{"st", "sot", "", nil, "Southern Sotho"},
	{"su", "sun", "", nil, "Sundanese"},
	{"sv", "swe", "", nil, "Swedish"},
	{"sw", "swa", "", nil, "Swahili"},
	{"ta", "tam", "", nil, "Tamil"},
	{"te", "tel", "", nil, "Telugu"},
	{"tg", "tgk", "", nil, "Tajik"},
	{"th", "tha", "", nil, "Thai"},
	{"ti", "tir", "", nil, "Tigrinya"},
	{"tk", "tuk", "", nil, "Turkmen"},
	{"tl", "tgl", "", nil, "Tagalog"},
	{"tn", "tsn", "", nil, "Tswana"},
	{"to", "ton", "", nil, "Tonga"},
	{"tr", "tur", "", nil, "Turkish"},
	{"ts", "tso", "", nil, "Tsonga"},
	{"tt", "tat", "", nil, "Tatar"},
	{"tw", "twi", "", nil, "Twi"},
	{"ty", "tah", "", nil, "Tahitian"},
	{"ug", "uig", "", nil, "Uyghur"},
	{"uk", "ukr", "", nil, "Ukrainian"},
	{"ur", "urd", "", nil, "Urdu"},
	{"uz", "uzb", "", nil, "Uzbek"},
	{"ve", "ven", "", nil, "Venda"},
	{"vi", "vie", "", nil, "Vietnamese"},
	{"vo", "vol", "", nil, "Volapük"},
	{"wa", "wln", "", nil, "Walloon"},
	{"wo", "wol", "", nil, "Wolof"},
	{"xh", "xho", "", nil, "Xhosa"},
	{"yi", "yid", "", nil, "Yiddish"},
	{"yo", "yor", "", nil, "Yoruba"},
	{"za", "zha", "", nil, "Zhuang"},
	{"zh", "zho", "chi", nil, "Chinese"},
	{"zu", "zul", "", nil, "Zulu"},
}

// Index maps built at init time. byCode3 keeps the first entry for a shared
// 3-letter code, so "zho" resolves to Chinese rather than Cantonese and "srp"
// to Serbian rather than Serbo-Croatian.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byName  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byName = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byName[strings.ToLower(e.display)] = e
		for _, code := range []string{e.code3, e.alt3} {
			if code == "" {
				continue
			}
			if _, taken := byCode3[code]; !taken || e.code2 == "zh" {
				byCode3[code] = e
			}
		}
	}
	for i := range languages {
		e := &languages[i]
		for _, code := range e.tags {
			if _, taken := byCode3[code]; !taken {
				byCode3[code] = e
			}
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byName[code]; ok {
		return e
	}
	return nil
}

// Known reports whether the table recognizes code as a language code or name.
func Known(code string) bool {
	return lookup(code) != nil
}

// ISO3 maps an ISO 639-1 code to its ISO 639-2 terminology code. The boolean
// is false when the table has no mapping; callers treat that as "absent".
func ISO3(code2 string) (string, bool) {
	e, ok := byCode2[strings.ToLower(strings.TrimSpace(code2))]
	if !ok {
		return "", false
	}
	return e.code3, true
}

// ToISO2 converts any recognized language code or name to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input. Unknown 2-letter codes pass through.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// Equivalents returns every spelling a stream tag may use for the same
// language: the input itself (lower-cased), the 2-letter code, both 3-letter
// codes and any extra tag codes. Unrecognized input yields only itself.
func Equivalents(code string) []string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	out := []string{code}
	e := lookup(code)
	if e == nil {
		return out
	}
	aliases := append([]string{e.code2, e.code3, e.alt3}, e.tags...)
	for _, alias := range aliases {
		if alias == "" || slices.Contains(out, alias) {
			continue
		}
		out = append(out, alias)
	}
	return out
}
