// Package postprocess implements the PostProcessor family (spec §4.7,
// priority band 150+): analyzers that read PriorResults only and never
// touch the filesystem themselves.
package postprocess

import (
	"fmt"
	"strings"

	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// RestEventAnalyzer derives MessageFlows from REST endpoints already found
// by earlier analyzers (spec §8 scenario 5). It recognizes two shapes:
//
//   - an "event" endpoint: a POST whose path contains an "events" segment
//     is treated as an inbound webhook/event notification, so the owning
//     component is the subscriber and the publisher is left unknown.
//   - a CRUD resource: a component exposing both POST /foo and GET
//     /foo or /foo/{id} for the same collection path is treated as
//     publishing and consuming its own resource-changed events.
type RestEventAnalyzer struct{}

func NewRestEventAnalyzer() *RestEventAnalyzer { return &RestEventAnalyzer{} }

func (a *RestEventAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "rest-event-postprocessor", Name: "REST-derived message flows", Family: "Post-processor",
		Priority: plugin.PriorityPostProcessor,
	}
}

func (a *RestEventAnalyzer) Applies(ctx *model.ScanContext) bool {
	for _, result := range ctx.PriorResults {
		if result != nil && len(result.ApiEndpoints) > 0 {
			return true
		}
	}
	return false
}

func (a *RestEventAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	stats := model.NewScanStatistics()

	var allEndpoints []model.ApiEndpoint
	for _, result := range ctx.PriorResults {
		if result == nil {
			continue
		}
		allEndpoints = append(allEndpoints, result.ApiEndpoints...)
	}
	if len(allEndpoints) == 0 {
		return a.emptyResult(stats)
	}
	stats.FilesDiscovered = len(allEndpoints)
	stats.FilesScanned = len(allEndpoints)

	byComponent := map[string][]model.ApiEndpoint{}
	for _, ep := range allEndpoints {
		byComponent[ep.ComponentID] = append(byComponent[ep.ComponentID], ep)
	}

	var flows []model.MessageFlow
	claimed := map[string]bool{} // collection path already covered by an event flow

	for componentID, endpoints := range byComponent {
		for _, ep := range endpoints {
			if ep.Method != "POST" || ep.Kind != model.KindREST || !isEventPath(ep.Path) {
				continue
			}
			messageType := ep.RequestSchema
			if messageType == "" {
				messageType = eventTypeName(ep.Path)
			}
			flows = append(flows, model.MessageFlow{
				SubscriberComponentID: componentID,
				Topic:                 ep.Path,
				MessageType:           messageType,
				Broker:                "rest-event",
				Confidence:            model.MEDIUM,
			})
			claimed[componentID+"|"+collectionPath(ep.Path)] = true
			stats.ParsedSuccessfully++
		}
	}

	for componentID, endpoints := range byComponent {
		collections := map[string]crudEvidence{}
		for _, ep := range endpoints {
			if ep.Kind != model.KindREST || isEventPath(ep.Path) {
				continue
			}
			path := collectionPath(ep.Path)
			evidence := collections[path]
			switch ep.Method {
			case "POST":
				evidence.hasCreate = true
				if evidence.requestSchema == "" {
					evidence.requestSchema = ep.RequestSchema
				}
			case "GET":
				evidence.hasRead = true
			}
			collections[path] = evidence
		}

		for path, evidence := range collections {
			if !evidence.hasCreate || !evidence.hasRead {
				continue
			}
			if claimed[componentID+"|"+path] {
				continue
			}
			messageType := evidence.requestSchema
			if messageType == "" {
				messageType = eventTypeName(path)
			}
			flows = append(flows, model.MessageFlow{
				PublisherComponentID:  componentID,
				SubscriberComponentID: componentID,
				Topic:                 path,
				MessageType:           messageType,
				Broker:                "restful-crud",
				Confidence:            model.MEDIUM,
			})
			stats.ParsedSuccessfully++
		}
	}

	return model.BuildSuccessResult(a.Identity().ID, nil, nil, nil, flows, nil, nil, nil, stats)
}

type crudEvidence struct {
	hasCreate     bool
	hasRead       bool
	requestSchema string
}

func (a *RestEventAnalyzer) emptyResult(stats *model.ScanStatistics) *model.ScanResult {
	return model.BuildSuccessResult(a.Identity().ID, nil, nil, nil, nil, nil, nil, nil, stats)
}

// isEventPath reports whether path names an "events" resource, e.g.
// "/api/events/order-created".
func isEventPath(path string) bool {
	for _, segment := range strings.Split(path, "/") {
		if segment == "events" {
			return true
		}
	}
	return false
}

// collectionPath strips a trailing path-parameter segment ("{id}" or
// ":id") so "/api/products" and "/api/products/{id}" both key to
// "/api/products".
func collectionPath(path string) string {
	segments := strings.Split(strings.TrimSuffix(path, "/"), "/")
	if n := len(segments); n > 0 {
		last := segments[n-1]
		if strings.HasPrefix(last, "{") || strings.HasPrefix(last, ":") {
			segments = segments[:n-1]
		}
	}
	return strings.Join(segments, "/")
}

// eventTypeName derives a PascalCase "...Event" message type from a path's
// last segment, singularizing a trailing "s" (spec §8 scenario 5: "/api/
// products" -> "ProductEvent").
func eventTypeName(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) == 0 {
		return ""
	}
	last := segments[len(segments)-1]
	last = strings.TrimSuffix(last, "s")
	if last == "" {
		return ""
	}
	return fmt.Sprintf("%s%sEvent", strings.ToUpper(last[:1]), last[1:])
}
