package filter

// DefaultStems is the built-in list of prohibited stems (Russian). The list
// is static configuration: adding, removing, or localizing entries never
// requires touching the matching algorithm in New.
var DefaultStems = []string{
	"бля", "блять", "сука", "хуй", "пизд", "еба", "ебл", "муд", "гандон",
	"чмо", "сволоч", "урод", "долбоёб", "мудак", "сучка", "шлюха", "гнида",
	"пидор", "пидр", "жопа", "залуп", "срать", "ссать", "гавно", "говно",
	"дерьмо", "мразь",
}
