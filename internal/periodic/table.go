// Package periodic holds the static reference table of chemical elements used
// to validate question authoring. Names are the Portuguese ones shown in the
// quiz; matching is accent and case insensitive.
package periodic

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Element is one (symbol, name) reference pair.
type Element struct {
	Symbol string
	Name   string
}

var elements = []Element{
	{"H", "Hidrogênio"}, {"He", "Hélio"}, {"Li", "Lítio"}, {"Be", "Berílio"},
	{"B", "Boro"}, {"C", "Carbono"}, {"N", "Nitrogênio"}, {"O", "Oxigênio"},
	{"F", "Flúor"}, {"Ne", "Neônio"}, {"Na", "Sódio"}, {"Mg", "Magnésio"},
	{"Al", "Alumínio"}, {"Si", "Silício"}, {"P", "Fósforo"}, {"S", "Enxofre"},
	{"Cl", "Cloro"}, {"Ar", "Argônio"}, {"K", "Potássio"}, {"Ca", "Cálcio"},
	{"Sc", "Escândio"}, {"Ti", "Titânio"}, {"V", "Vanádio"}, {"Cr", "Cromo"},
	{"Mn", "Manganês"}, {"Fe", "Ferro"}, {"Co", "Cobalto"}, {"Ni", "Níquel"},
	{"Cu", "Cobre"}, {"Zn", "Zinco"}, {"Ga", "Gálio"}, {"Ge", "Germânio"},
	{"As", "Arsênio"}, {"Se", "Selênio"}, {"Br", "Bromo"}, {"Kr", "Criptônio"},
	{"Rb", "Rubídio"}, {"Sr", "Estrôncio"}, {"Y", "Ítrio"}, {"Zr", "Zircônio"},
	{"Nb", "Nióbio"}, {"Mo", "Molibdênio"}, {"Tc", "Tecnécio"}, {"Ru", "Rutênio"},
	{"Rh", "Ródio"}, {"Pd", "Paládio"}, {"Ag", "Prata"}, {"Cd", "Cádmio"},
	{"In", "Índio"}, {"Sn", "Estanho"}, {"Sb", "Antimônio"}, {"Te", "Telúrio"},
	{"I", "Iodo"}, {"Xe", "Xenônio"}, {"Cs", "Césio"}, {"Ba", "Bário"},
	{"La", "Lantânio"}, {"Ce", "Cério"}, {"Pr", "Praseodímio"}, {"Nd", "Neodímio"},
	{"Pm", "Promécio"}, {"Sm", "Samário"}, {"Eu", "Európio"}, {"Gd", "Gadolínio"},
	{"Tb", "Térbio"}, {"Dy", "Disprósio"}, {"Ho", "Hólmio"}, {"Er", "Érbio"},
	{"Tm", "Túlio"}, {"Yb", "Itérbio"}, {"Lu", "Lutécio"}, {"Hf", "Háfnio"},
	{"Ta", "Tântalo"}, {"W", "Tungstênio"}, {"Re", "Rênio"}, {"Os", "Ósmio"},
	{"Ir", "Irídio"}, {"Pt", "Platina"}, {"Au", "Ouro"}, {"Hg", "Mercúrio"},
	{"Tl", "Tálio"}, {"Pb", "Chumbo"}, {"Bi", "Bismuto"}, {"Po", "Polônio"},
	{"At", "Astato"}, {"Rn", "Radônio"}, {"Fr", "Frâncio"}, {"Ra", "Rádio"},
	{"Ac", "Actínio"}, {"Th", "Tório"}, {"Pa", "Protactínio"}, {"U", "Urânio"},
	{"Np", "Netúnio"}, {"Pu", "Plutônio"}, {"Am", "Amerício"}, {"Cm", "Cúrio"},
	{"Bk", "Berquélio"}, {"Cf", "Califórnio"}, {"Es", "Einstênio"}, {"Fm", "Férmio"},
	{"Md", "Mendelévio"}, {"No", "Nobélio"}, {"Lr", "Laurêncio"}, {"Rf", "Rutherfórdio"},
	{"Db", "Dúbnio"}, {"Sg", "Seabórgio"}, {"Bh", "Bóhrio"}, {"Hs", "Hássio"},
	{"Mt", "Meitnério"}, {"Ds", "Darmstádtio"}, {"Rg", "Roentgênio"}, {"Cn", "Copernício"},
	{"Nh", "Nihônio"}, {"Fl", "Fleróvio"}, {"Mc", "Moscóvio"}, {"Lv", "Livermório"},
	{"Ts", "Tenessino"}, {"Og", "Oganessônio"},
}

var (
	indexOnce  sync.Once
	byNameKey  map[string]Element
	foldNoMark = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// FoldKey normalizes s for comparison: diacritics stripped, lowercased,
// surrounding space trimmed. Also used to derive placeholder image names.
func FoldKey(s string) string {
	folded, _, err := transform.String(foldNoMark, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}

func index() map[string]Element {
	indexOnce.Do(func() {
		byNameKey = make(map[string]Element, len(elements))
		for _, e := range elements {
			byNameKey[FoldKey(e.Name)] = e
		}
	})
	return byNameKey
}

// Lookup reports whether (name, symbol) is a real element pair. Both parts
// must belong to the same element; a name from one element with the symbol of
// another does not match.
func Lookup(name, symbol string) bool {
	e, ok := index()[FoldKey(name)]
	if !ok {
		return false
	}
	return FoldKey(e.Symbol) == FoldKey(symbol)
}

// All returns the full reference list in atomic-number order.
func All() []Element {
	out := make([]Element, len(elements))
	copy(out, elements)
	return out
}
