package script

import (
	"strings"
	"sync"

	"github.com/npillmayer/textshaping/engine/glyphing"
)

// scriptExtensions lists characters which are used by more than one script,
// following Unicode's ScriptExtensions.txt. Only characters relevant for
// run segmentation are listed; all other characters belong to exactly the
// script reported by glyphing.ScriptOf.
var scriptExtensions = []struct {
	from, to rune
	scripts  string // ISO 15924 codes
}{
	{0x0363, 0x036F, "Latn"},
	{0x0483, 0x0483, "Cyrl Perm"},
	{0x0484, 0x0484, "Cyrl Glag"},
	{0x0485, 0x0486, "Cyrl Latn"},
	{0x0487, 0x0487, "Cyrl Glag"},
	{0x0589, 0x0589, "Armn Geor"},
	{0x060C, 0x060C, "Arab Nkoo Rohg Syrc Thaa Yezi"},
	{0x061B, 0x061B, "Arab Nkoo Rohg Syrc Thaa Yezi"},
	{0x061C, 0x061C, "Arab Syrc Thaa"},
	{0x061F, 0x061F, "Adlm Arab Nkoo Rohg Syrc Thaa Yezi"},
	{0x0640, 0x0640, "Adlm Arab Mand Mani Ougr Phlp Rohg Sogd Syrc"},
	{0x064B, 0x0655, "Arab Syrc"},
	{0x0660, 0x0669, "Arab Thaa Yezi"},
	{0x0670, 0x0670, "Arab Syrc"},
	{0x06D4, 0x06D4, "Arab Rohg"},
	{0x0951, 0x0951, "Beng Deva Gran Gujr Guru Knda Latn Mlym Orya Shrd Taml Telu Tirh"},
	{0x0952, 0x0952, "Beng Deva Gran Gujr Guru Knda Latn Mlym Orya Taml Telu Tirh"},
	{0x0964, 0x0964, "Beng Deva Dogr Gong Gonm Gran Gujr Guru Knda Mahj Mlym Nand Orya Sind Sinh Sylo Takr Taml Telu Tirh"},
	{0x0965, 0x0965, "Beng Deva Dogr Gong Gonm Gran Gujr Guru Knda Limb Mahj Mlym Nand Orya Sind Sinh Sylo Takr Taml Telu Tirh"},
	{0x0966, 0x096F, "Deva Dogr Kthi Mahj"},
	{0x10FB, 0x10FB, "Geor Latn"},
	{0x1CD0, 0x1CD0, "Beng Deva Gran Knda"},
	{0x1CD1, 0x1CD1, "Deva"},
	{0x1CD2, 0x1CD2, "Beng Deva Gran Knda"},
	{0x1DF8, 0x1DF8, "Cyrl Syrc"},
	{0x202F, 0x202F, "Latn Mong"},
	{0x20F0, 0x20F0, "Deva Gran Latn"},
	{0x2E43, 0x2E43, "Cyrl Glag"},
	{0x3001, 0x3003, "Bopo Hang Hani Hira Kana Yiii"},
	{0x3006, 0x3006, "Hani"},
	{0x3008, 0x3011, "Bopo Hang Hani Hira Kana Yiii"},
	{0x3013, 0x3013, "Bopo Hang Hani Hira Kana"},
	{0x3014, 0x301B, "Bopo Hang Hani Hira Kana Yiii"},
	{0x301C, 0x301F, "Bopo Hang Hani Hira Kana"},
	{0x302A, 0x302D, "Bopo Hani"},
	{0x3030, 0x3030, "Bopo Hang Hani Hira Kana"},
	{0x3031, 0x3035, "Hira Kana"},
	{0x3037, 0x3037, "Bopo Hang Hani Hira Kana"},
	{0x303C, 0x303D, "Hani Hira Kana"},
	{0x303E, 0x303F, "Hani"},
	{0x3099, 0x309C, "Hira Kana"},
	{0x30A0, 0x30A0, "Hira Kana"},
	{0x30FB, 0x30FB, "Bopo Hang Hani Hira Kana Yiii"},
	{0x30FC, 0x30FC, "Hira Kana"},
	{0x3190, 0x319F, "Hani"},
	{0x31C0, 0x31E3, "Hani"},
	{0x3220, 0x3247, "Hani"},
	{0x3280, 0x32B0, "Hani"},
	{0x32C0, 0x32CB, "Hani"},
	{0x32FF, 0x32FF, "Hani"},
	{0x3358, 0x3370, "Hani"},
	{0x337B, 0x337F, "Hani"},
	{0x33E0, 0x33FE, "Hani"},
	{0xA66F, 0xA66F, "Cyrl Glag"},
	{0xA830, 0xA832, "Deva Dogr Gujr Guru Khoj Knda Kthi Mahj Mlym Modi Nand Sind Takr Tirh"},
	{0xA833, 0xA835, "Deva Dogr Gujr Guru Khoj Knda Kthi Mahj Modi Nand Sind Takr Tirh"},
	{0xA836, 0xA839, "Deva Dogr Gujr Guru Khoj Kthi Mahj Modi Sind Takr Tirh"},
	{0xFD3E, 0xFD3F, "Arab Nkoo"},
	{0xFE45, 0xFE46, "Bopo Hang Hani Hira Kana"},
	{0xFF61, 0xFF65, "Bopo Hang Hani Hira Kana Yiii"},
	{0xFF70, 0xFF70, "Hira Kana"},
	{0xFF9E, 0xFF9F, "Hira Kana"},
}

var (
	extensionsOnce  sync.Once
	extensionsTable map[rune][]glyphing.Script
)

// extensionsOf returns the script extensions of c, or nil if c belongs to
// its script only. The table is built on first use and is read-only
// afterwards.
func extensionsOf(c rune) []glyphing.Script {
	extensionsOnce.Do(func() {
		extensionsTable = make(map[rune][]glyphing.Script)
		for _, ext := range scriptExtensions {
			codes := strings.Fields(ext.scripts)
			scripts := make([]glyphing.Script, len(codes))
			for i, code := range codes {
				scripts[i] = glyphing.ScriptFromISO(code)
			}
			for r := ext.from; r <= ext.to; r++ {
				extensionsTable[r] = scripts
			}
		}
	})
	return extensionsTable[c]
}

// hasScript is true if c is used by script s.
func hasScript(c rune, s glyphing.Script) bool {
	ext := extensionsOf(c)
	if ext == nil {
		return glyphing.ScriptOf(c) == s
	}
	for _, x := range ext {
		if x == s {
			return true
		}
	}
	return false
}
