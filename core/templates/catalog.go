package templates

import "github.com/adalundhe/atlas/core/kpi"

// DefaultDepartment is used when a department has no filler mapping.
const DefaultDepartment = "sales"

// performanceTemplates maps each tier to its candidate coaching
// messages. Messages are bilingual because delivery targets an
// Arabic-speaking workforce; placeholders use {name} syntax so the
// bodies round-trip through the prompt store unchanged.
var performanceTemplates = map[kpi.Tier][]string{
	kpi.TierExcellent: {
		"أداء استثنائي! 🌟 استمر على نفس الوتيرة في {focus_area}",
		"ممتاز! نتائجك في {key_metric} تتجاوز التوقعات 🏆",
	},
	kpi.TierGood: {
		"واصل شغلك الرائع! 🚀 اليوم ركز على هدف واحد واضح في {focus_area}",
		"أداء جيد هذا الشهر 👏 خطوة صغيرة إضافية في {key_metric} توصلك للتميز",
		"شغل ثابت ومستقر ✅ جرب ترفع سقف {key_metric} شوي هالأسبوع",
	},
	kpi.TierNeedsImprovement: {
		"الشهر الحالي يحتاج دفعة أقوى 💪 خل تركيزك اليوم على {focus_area}",
		"في مجال واضح للتحسين في {key_metric} — ابدأ بخطوة وحدة اليوم",
		"لا تشيل هم، الفجوة بسيطة 🎯 راجع {focus_area} وحدد أولوية واحدة",
	},
	kpi.TierCritical: {
		"نحتاج نوقف ونراجع 🔴 الفجوة في {key_metric} كبيرة — تواصل مع مديرك اليوم",
		"الوضع يحتاج خطة عاجلة ⚠️ ركز كل وقتك على {focus_area} هالأسبوع",
		"خلنا نرجع للأساسيات: {focus_area} أولاً، وخطوة كل يوم 💪",
	},
}

// departmentVariables maps a department to its placeholder fillers.
// Unknown departments fall back to DefaultDepartment.
var departmentVariables = map[string]map[string]string{
	"sales": {
		"focus_area": "متابعة العملاء المحتملين",
		"key_metric": "الصفقات المغلقة",
	},
	"marketing": {
		"focus_area": "الحملات النشطة",
		"key_metric": "العملاء الجدد",
	},
	"tech": {
		"focus_area": "المهام التقنية المعلقة",
		"key_metric": "التسليمات المكتملة",
	},
	"general": {
		"focus_area": "أولويات الأسبوع",
		"key_metric": "المهام المنجزة",
	},
}

// Tiers returns the tiers present in the catalogue.
func Tiers() []kpi.Tier {
	tiers := make([]kpi.Tier, 0, len(performanceTemplates))
	for tier := range performanceTemplates {
		tiers = append(tiers, tier)
	}
	return tiers
}

// Departments returns the departments with filler mappings.
func Departments() []string {
	depts := make([]string, 0, len(departmentVariables))
	for dept := range departmentVariables {
		depts = append(depts, dept)
	}
	return depts
}
