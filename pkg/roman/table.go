package roman

import "strings"

// ParseYomigana splits a hiragana reading into an ordered sequence of Chars,
// each carrying every romanization style a typist may use for that unit.
// The rule order below mirrors the reference romanization table exactly:
// small-tsu geminate-consonant lookahead first, then two-kana digraphs, then
// single kana, longest match first so a digraph is never mistaken for its
// first kana typed alone.
func ParseYomigana(yomigana []rune) ([]*Char, error) {
	var out []*Char
	for len(yomigana) > 0 {
		styles, n, ok := matchUnit(yomigana)
		if !ok {
			return nil, &ParseError{Yomigana: string(yomigana)}
		}
		out = append(out, NewChar(styles))
		yomigana = yomigana[n:]
	}
	return out, nil
}

// ParseError reports a kana sequence with no known romanization, e.g. a
// kanji character slipping into a `:hiragana` line.
type ParseError struct {
	Yomigana string
}

func (e *ParseError) Error() string {
	return "unsupported kana sequence in reading: " + e.Yomigana
}

func in(r rune, set string) bool {
	return strings.ContainsRune(set, r)
}

func second(y []rune) rune {
	if len(y) < 2 {
		return 0
	}
	return y[1]
}

const (
	kaRow  = "かきくけこ"
	saRow  = "さしすせそ"
	taRow  = "たつてと"
	haRow  = "はひふへほ"
	maRow  = "まみむめも"
	yaRow  = "やゆよ"
	raRow  = "らりるれろ"
	waRow  = "わゐゑを"
	zaRow  = "ざずぜぞ"
	daRow  = "だぢづでど"
	baRow  = "ばびぶべぼ"
	paRow  = "ぱぴぷぺぽ"
	naRow5 = "なにぬねの"
	smallQ = "ぁぃぅぇぉ"
)

// matchUnit tries every rule in priority order and returns the styles for
// the unit at the front of y, how many runes it consumes, and whether a
// rule matched at all.
func matchUnit(y []rune) (styles []string, n int, ok bool) {
	r0 := y[0]
	r1 := second(y)

	if r0 == 'っ' {
		switch {
		case r1 == 'く' && len(y) >= 3 && in(y[2], smallQ):
			return []string{"q", "k", "xtu", "ltu"}, 1, true
		case in(r1, kaRow):
			return []string{"k", "xtu", "ltu"}, 1, true
		case in(r1, saRow):
			return []string{"s", "xtu", "ltu"}, 1, true
		case in(r1, taRow):
			return []string{"t", "xtu", "ltu"}, 1, true
		case r1 == 'ち':
			return []string{"t", "c", "xtu", "ltu"}, 1, true
		case in(r1, haRow):
			return []string{"h", "xtu", "ltu"}, 1, true
		case in(r1, maRow):
			return []string{"m", "xtu", "ltu"}, 1, true
		case in(r1, yaRow):
			return []string{"y", "xtu", "ltu"}, 1, true
		case in(r1, raRow):
			return []string{"r", "xtu", "ltu"}, 1, true
		case in(r1, waRow):
			return []string{"w", "xtu", "ltu"}, 1, true
		case in(r1, zaRow):
			return []string{"z", "xtu", "ltu"}, 1, true
		case r1 == 'じ':
			return []string{"z", "j", "xtu", "ltu"}, 1, true
		case in(r1, daRow):
			return []string{"d", "xtu", "ltu"}, 1, true
		case in(r1, baRow):
			return []string{"b", "xtu", "ltu"}, 1, true
		case in(r1, paRow):
			return []string{"p", "xtu", "ltu"}, 1, true
		default:
			return []string{"xtu", "ltu"}, 1, true
		}
	}

	if r0 == 'う' {
		switch r1 {
		case 'ぃ':
			return []string{"wi"}, 2, true
		case 'ぇ':
			return []string{"we"}, 2, true
		default:
			return []string{"u"}, 1, true
		}
	}

	if r0 == 'き' {
		switch r1 {
		case 'ゃ':
			return []string{"kya"}, 2, true
		case 'ぃ':
			return []string{"kyi"}, 2, true
		case 'ゅ':
			return []string{"kyu"}, 2, true
		case 'ぇ':
			return []string{"kye"}, 2, true
		case 'ょ':
			return []string{"kyo"}, 2, true
		default:
			return []string{"ki"}, 1, true
		}
	}
	if r0 == 'ぎ' {
		switch r1 {
		case 'ゃ':
			return []string{"gya"}, 2, true
		case 'ぃ':
			return []string{"gyi"}, 2, true
		case 'ゅ':
			return []string{"gyu"}, 2, true
		case 'ぇ':
			return []string{"gye"}, 2, true
		case 'ょ':
			return []string{"gyo"}, 2, true
		default:
			return []string{"gi"}, 1, true
		}
	}
	if r0 == 'く' {
		switch r1 {
		case 'ぁ':
			return []string{"qa", "kwa"}, 2, true
		case 'ぃ':
			return []string{"qi", "kwi"}, 2, true
		case 'ぅ':
			return []string{"qu", "kwu"}, 2, true
		case 'ぇ':
			return []string{"qe", "kwe"}, 2, true
		case 'ぉ':
			return []string{"qo", "kwo"}, 2, true
		default:
			return []string{"ku"}, 1, true
		}
	}
	if r0 == 'し' {
		switch r1 {
		case 'ゃ':
			return []string{"sha", "sya"}, 2, true
		case 'ぃ':
			return []string{"syi"}, 2, true
		case 'ゅ':
			return []string{"shu", "syu"}, 2, true
		case 'ぇ':
			return []string{"sye"}, 2, true
		case 'ょ':
			return []string{"sho", "syo"}, 2, true
		default:
			return []string{"si", "shi"}, 1, true
		}
	}
	if r0 == 'ち' {
		switch r1 {
		case 'ゃ':
			return []string{"tya", "cha", "cya"}, 2, true
		case 'ぃ':
			return []string{"cyi", "tyi"}, 2, true
		case 'ゅ':
			return []string{"chu", "cyu", "tyu"}, 2, true
		case 'ぇ':
			return []string{"cye", "tye"}, 2, true
		case 'ょ':
			return []string{"cho", "cyo", "tyo"}, 2, true
		default:
			return []string{"ti", "chi"}, 1, true
		}
	}
	if r0 == 'に' {
		switch r1 {
		case 'ゃ':
			return []string{"nya"}, 2, true
		case 'ぃ':
			return []string{"nyi"}, 2, true
		case 'ゅ':
			return []string{"nyu"}, 2, true
		case 'ぇ':
			return []string{"nye"}, 2, true
		case 'ょ':
			return []string{"nyo"}, 2, true
		default:
			return []string{"ni"}, 1, true
		}
	}
	if r0 == 'ひ' {
		switch r1 {
		case 'ゃ':
			return []string{"hya"}, 2, true
		case 'ぃ':
			return []string{"hyi"}, 2, true
		case 'ゅ':
			return []string{"hyu"}, 2, true
		case 'ぇ':
			return []string{"hye"}, 2, true
		case 'ょ':
			return []string{"hyo"}, 2, true
		default:
			return []string{"hi"}, 1, true
		}
	}
	if r0 == 'ふ' {
		switch r1 {
		case 'ぁ':
			return []string{"fa"}, 2, true
		case 'ぃ':
			return []string{"fi"}, 2, true
		case 'ぇ':
			return []string{"fe"}, 2, true
		case 'ぉ':
			return []string{"fo"}, 2, true
		case 'ゃ':
			return []string{"fya"}, 2, true
		case 'ゅ':
			return []string{"fyu"}, 2, true
		case 'ょ':
			return []string{"fyo"}, 2, true
		default:
			return []string{"hu"}, 1, true
		}
	}
	if r0 == 'み' {
		switch r1 {
		case 'ゃ':
			return []string{"mya"}, 2, true
		case 'ぃ':
			return []string{"myi"}, 2, true
		case 'ゅ':
			return []string{"myu"}, 2, true
		case 'ょ':
			return []string{"myo"}, 2, true
		default:
			return []string{"mi"}, 1, true
		}
	}
	if r0 == 'り' {
		switch r1 {
		case 'ゃ':
			return []string{"rya"}, 2, true
		case 'ぃ':
			return []string{"ryi"}, 2, true
		case 'ゅ':
			return []string{"ryu"}, 2, true
		case 'ぇ':
			return []string{"rye"}, 2, true
		case 'ょ':
			return []string{"ryo"}, 2, true
		default:
			return []string{"ri"}, 1, true
		}
	}
	if r0 == 'ゔ' {
		switch r1 {
		case 'ぁ':
			return []string{"va"}, 2, true
		case 'ぃ':
			return []string{"vi"}, 2, true
		case 'ぇ':
			return []string{"ve"}, 2, true
		case 'ぉ':
			return []string{"vo"}, 2, true
		default:
			return []string{"vu"}, 1, true
		}
	}
	if r0 == 'ぐ' {
		switch r1 {
		case 'ぁ':
			return []string{"gwa"}, 2, true
		case 'ぃ':
			return []string{"gwi"}, 2, true
		case 'ぅ':
			return []string{"gwu"}, 2, true
		case 'ぇ':
			return []string{"gwe"}, 2, true
		case 'ぉ':
			return []string{"gwo"}, 2, true
		default:
			return []string{"gu"}, 1, true
		}
	}
	if r0 == 'じ' {
		switch r1 {
		case 'ゃ':
			return []string{"ja", "jya"}, 2, true
		case 'ぃ':
			return []string{"jyi"}, 2, true
		case 'ゅ':
			return []string{"ju", "jyu"}, 2, true
		case 'ぇ':
			return []string{"jye"}, 2, true
		case 'ょ':
			return []string{"jo", "jyo"}, 2, true
		default:
			return []string{"zi", "ji"}, 1, true
		}
	}
	if r0 == 'ぢ' {
		switch r1 {
		case 'ゃ':
			return []string{"dya"}, 2, true
		case 'ゅ':
			return []string{"dyu"}, 2, true
		case 'ぇ':
			return []string{"dye"}, 2, true
		case 'ょ':
			return []string{"dyo"}, 2, true
		default:
			return []string{"di"}, 1, true
		}
	}
	if r0 == 'び' {
		switch r1 {
		case 'ゃ':
			return []string{"bya"}, 2, true
		case 'ぃ':
			return []string{"byi"}, 2, true
		case 'ゅ':
			return []string{"byu"}, 2, true
		case 'ぇ':
			return []string{"bye"}, 2, true
		case 'ょ':
			return []string{"byo"}, 2, true
		default:
			return []string{"bi"}, 1, true
		}
	}
	if r0 == 'ぴ' {
		switch r1 {
		case 'ゃ':
			return []string{"pya"}, 2, true
		case 'ぃ':
			return []string{"pyi"}, 2, true
		case 'ゅ':
			return []string{"pyu"}, 2, true
		case 'ぇ':
			return []string{"pye"}, 2, true
		case 'ょ':
			return []string{"pyo"}, 2, true
		default:
			return []string{"pi"}, 1, true
		}
	}

	if r0 == 'ん' && in(r1, naRow5) {
		return []string{"nn"}, 1, true
	}

	switch r0 {
	case 'あ':
		return []string{"a"}, 1, true
	case 'い':
		return []string{"i"}, 1, true
	case 'え':
		return []string{"e"}, 1, true
	case 'お':
		return []string{"o"}, 1, true
	case 'か':
		return []string{"ka"}, 1, true
	case 'け':
		return []string{"ke"}, 1, true
	case 'こ':
		return []string{"ko"}, 1, true
	case 'さ':
		return []string{"sa"}, 1, true
	case 'す':
		return []string{"su"}, 1, true
	case 'せ':
		return []string{"se"}, 1, true
	case 'そ':
		return []string{"so"}, 1, true
	case 'た':
		return []string{"ta"}, 1, true
	case 'つ':
		return []string{"tu"}, 1, true
	case 'て':
		return []string{"te"}, 1, true
	case 'と':
		return []string{"to"}, 1, true
	case 'な':
		return []string{"na"}, 1, true
	case 'ぬ':
		return []string{"nu"}, 1, true
	case 'ね':
		return []string{"ne"}, 1, true
	case 'の':
		return []string{"no"}, 1, true
	case 'は':
		return []string{"ha"}, 1, true
	case 'へ':
		return []string{"he"}, 1, true
	case 'ほ':
		return []string{"ho"}, 1, true
	case 'ま':
		return []string{"ma"}, 1, true
	case 'む':
		return []string{"mu"}, 1, true
	case 'め':
		return []string{"me"}, 1, true
	case 'も':
		return []string{"mo"}, 1, true
	case 'や':
		return []string{"ya"}, 1, true
	case 'ゆ':
		return []string{"yu"}, 1, true
	case 'よ':
		return []string{"yo"}, 1, true
	case 'ら':
		return []string{"ra"}, 1, true
	case 'る':
		return []string{"ru"}, 1, true
	case 'れ':
		return []string{"re"}, 1, true
	case 'ろ':
		return []string{"ro"}, 1, true
	case 'わ':
		return []string{"wa"}, 1, true
	case 'ゐ':
		return []string{"wi"}, 1, true
	case 'ゑ':
		return []string{"we"}, 1, true
	case 'を':
		return []string{"wo"}, 1, true
	case 'ん':
		return []string{"n"}, 1, true
	case 'ぁ':
		return []string{"xa", "la"}, 1, true
	case 'ぃ':
		return []string{"xi", "li"}, 1, true
	case 'ぅ':
		return []string{"xu", "lu"}, 1, true
	case 'ぇ':
		return []string{"xe", "le"}, 1, true
	case 'ぉ':
		return []string{"xo", "lo"}, 1, true
	case 'っ':
		return []string{"xtu", "ltu"}, 1, true
	case 'ゃ':
		return []string{"xya", "lya"}, 1, true
	case 'ゅ':
		return []string{"xyu", "lyu"}, 1, true
	case 'ょ':
		return []string{"xyo", "lyo"}, 1, true
	case 'ゎ':
		return []string{"xwa", "lwa"}, 1, true
	case 'が':
		return []string{"ga"}, 1, true
	case 'ぎ':
		return []string{"gi"}, 1, true
	case 'ぐ':
		return []string{"gu"}, 1, true
	case 'げ':
		return []string{"ge"}, 1, true
	case 'ご':
		return []string{"go"}, 1, true
	case 'ざ':
		return []string{"za"}, 1, true
	case 'ず':
		return []string{"zu"}, 1, true
	case 'ぜ':
		return []string{"ze"}, 1, true
	case 'ぞ':
		return []string{"zo"}, 1, true
	case 'だ':
		return []string{"da"}, 1, true
	case 'づ':
		return []string{"du"}, 1, true
	case 'で':
		return []string{"de"}, 1, true
	case 'ど':
		return []string{"do"}, 1, true
	case 'ば':
		return []string{"ba"}, 1, true
	case 'ぶ':
		return []string{"bu"}, 1, true
	case 'べ':
		return []string{"be"}, 1, true
	case 'ぼ':
		return []string{"bo"}, 1, true
	case 'ぱ':
		return []string{"pa"}, 1, true
	case 'ぷ':
		return []string{"pu"}, 1, true
	case 'ぺ':
		return []string{"pe"}, 1, true
	case 'ぽ':
		return []string{"po"}, 1, true
	case 'ー':
		return []string{"-"}, 1, true
	}

	return nil, 0, false
}
