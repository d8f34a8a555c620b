package subpanel

import (
	"strings"

	"github.com/opmodel/legacyui/internal/legacy"
)

// InsightWidgetStatistics is the only insight widget type.
const InsightWidgetStatistics = "statistics"

// TitleKeyPlaceholder is replaced with the tab title key in explicit widget labels.
const TitleKeyPlaceholder = "{{title_key}}"

// ResolveInsightWidget returns the insight widget configuration of a tab.
//
// An explicit widget on the panel definition is copied whole and its labelKey
// placeholders resolved. Otherwise, a tab whose descriptor declares no widget,
// or an empty one, gets the default statistics banner. A tab that declares
// its own widget but whose panel has none gets the empty configuration.
func ResolveInsightWidget(sp *legacy.Subpanel, tab legacy.TabDescriptor, frontendModule string) InsightWidgetConfig {
	if explicit, ok := sp.InsightWidget(); ok {
		widget := explicit.Clone()
		for i := range widget.Rows {
			for _, col := range widget.Rows[i].Cols {
				if label, ok := col["labelKey"].(string); ok {
					col["labelKey"] = strings.ReplaceAll(label, TitleKeyPlaceholder, tab.TitleKey)
				}
			}
		}
		return statistics(widget)
	}

	if tab.InsightWidget.IsEmpty() {
		return statistics(defaultInsightWidget(tab, frontendModule))
	}

	return InsightWidgetConfig{}
}

func statistics(widget *legacy.WidgetDefinition) InsightWidgetConfig {
	return InsightWidgetConfig{
		Type:    InsightWidgetStatistics,
		Options: &InsightWidgetOptions{InsightWidget: widget},
	}
}

func defaultInsightWidget(tab legacy.TabDescriptor, frontendModule string) *legacy.WidgetDefinition {
	return &legacy.WidgetDefinition{
		Rows: []legacy.WidgetRow{
			{
				Justify: "end",
				Cols: []legacy.Attributes{
					{"icon": tab.Module},
				},
			},
			{
				Align:   "end",
				Justify: "start",
				Class:   "flex-grow-1",
				Cols: []legacy.Attributes{
					{
						"statistic": frontendModule,
						"class":     "sub-panel-banner-value",
						"bold":      true,
					},
				},
			},
			{
				Justify: "start",
				Cols: []legacy.Attributes{
					{
						"descriptionKey": tab.TitleKey + "_INSIGHT_DESCRIPTION",
						"class":          "sub-panel-banner-tooltip",
					},
				},
			},
			{
				Justify: "start",
				Cols: []legacy.Attributes{
					{
						"labelKey": tab.TitleKey,
						"class":    "sub-panel-banner-button-title",
						"bold":     true,
					},
				},
			},
		},
	}
}
