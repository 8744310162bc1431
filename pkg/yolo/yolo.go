package yolo

import (
	"errors"
	"fmt"
	"image"

	"github.com/progmat64/AirVision/pkg/annotator"
	"github.com/progmat64/AirVision/pkg/config"

	"gocv.io/x/gocv"
)

var (
	ERR_BAD_MODEL        = errors.New("Can't load model")
	ERR_CANT_SET_BACKEND = errors.New("Can't set backend")
	ERR_CANT_SET_TARGET  = errors.New("Can't set target")
)

// Model runs a YOLO-family network over gocv's DNN module
// and reports plain detections, no track ids.
type Model struct {
	net                gocv.Net
	output_layer_names []string
	conv_params        gocv.ImageToBlobParams
	transpose          bool
	conf               float32
	nms                float32
}

func NewModel(cfg *config.ConfigFile) (*Model, error) {
	var net gocv.Net

	switch config.ModelFormat(cfg.Model.Format) {
	case config.ModelFormatCaffe:
		net = gocv.ReadNetFromCaffe(cfg.Model.ConfigPath, cfg.Model.Path)
	case config.ModelFormatONNX:
		net = gocv.ReadNetFromONNX(cfg.Model.Path)
	case config.ModelFormatOpenVINO:
		net = gocv.ReadNet(cfg.Model.Path, cfg.Model.ConfigPath)
	default:
		return nil, fmt.Errorf("%w: unknown format %s", ERR_BAD_MODEL, cfg.Model.Format)
	}

	if net.Empty() {
		return nil, fmt.Errorf("%w: %s", ERR_BAD_MODEL, cfg.Model.Path)
	}

	output_layer_names := getOutputLayerNames(&net)
	if len(output_layer_names) == 0 {
		net.Close()
		return nil, fmt.Errorf("%w: no output layers in %s", ERR_BAD_MODEL, cfg.Model.Path)
	}

	if err := net.SetPreferableBackend(gocv.NetBackendDefault); err != nil {
		net.Close()
		return nil, ERR_CANT_SET_BACKEND
	}

	var target gocv.NetTargetType
	switch config.DeviceType(cfg.Backend.Device) {
	case config.DeviceTypeGPU:
		target = gocv.NetTargetCUDA
	case config.DeviceTypeVPU:
		target = gocv.NetTargetVPU
	default:
		target = gocv.NetTargetCPU
	}
	if err := net.SetPreferableTarget(target); err != nil {
		net.Close()
		return nil, ERR_CANT_SET_TARGET
	}

	return &Model{
		net:                net,
		output_layer_names: output_layer_names,
		conv_params: gocv.NewImageToBlobParams(
			1.0/255.0,
			image.Pt(int(cfg.Model.X), int(cfg.Model.Y)),
			gocv.NewScalar(0, 0, 0, 0),
			true,
			gocv.MatTypeCV32F,
			gocv.DataLayoutNCHW,
			gocv.PaddingModeLetterbox,
			gocv.NewScalar(0, 0, 0, 0),
		),
		transpose: cfg.Model.Transpose,
		conf:      cfg.Model.ConfidenceThreshold,
		nms:       cfg.Model.NMSThreshold,
	}, nil
}

func (m *Model) Close() error {
	return m.net.Close()
}

func (m *Model) SetConfidenceThreshold(threshold float32) {
	m.conf = threshold
}

func (m *Model) Predict(img *gocv.Mat) ([]annotator.Detection, error) {
	blob := gocv.BlobFromImageWithParams(*img, m.conv_params)
	defer blob.Close()

	m.net.SetInput(blob, "")

	outputs := m.net.ForwardLayers(m.output_layer_names)
	defer func() {
		for _, output := range outputs {
			output.Close()
		}
	}()

	// YOLO-models authored by ultralytics come transposed
	if m.transpose && len(outputs) > 0 {
		gocv.TransposeND(outputs[0], []int{0, 2, 1}, &outputs[0])
	}

	var detections []annotator.Detection

	for _, output := range outputs {
		output_2d := output.Reshape(1, output.Size()[1])
		cols := output_2d.Cols()
		var boxes []image.Rectangle
		var confidences []float32
		var class_ids []int
		for i := 0; i < output_2d.Rows(); i++ {
			func() {
				row := output_2d.RowRange(i, i+1)
				defer row.Close()
				// columns 4:cols hold per-class confidences
				class_scores := row.ColRange(4, cols)
				defer class_scores.Close()
				_, confidence, _, class_loc := gocv.MinMaxLoc(class_scores)
				// columns 0,1 are the box center, 2,3 its dimensions
				x, y := int(row.GetFloatAt(0, 0)), int(row.GetFloatAt(0, 1))
				half_w, half_h := int(row.GetFloatAt(0, 2)/2.0), int(row.GetFloatAt(0, 3)/2.0)
				boxes = append(boxes, image.Rect(x-half_w, y-half_h, x+half_w, y+half_h))
				confidences = append(confidences, confidence)
				class_ids = append(class_ids, class_loc.X)
			}()
		}
		output_2d.Close()

		if len(boxes) == 0 {
			continue
		}

		indices := gocv.NMSBoxes(boxes, confidences, m.conf, m.nms)
		if len(indices) == 0 {
			continue
		}

		kept := make([]image.Rectangle, len(indices))
		for i, j := range indices {
			kept[i] = boxes[j]
		}
		kept = m.conv_params.BlobRectsToImageRects(kept, image.Pt(img.Cols(), img.Rows()))

		for i, j := range indices {
			detections = append(detections, annotator.Detection{
				Box:        kept[i],
				Confidence: confidences[j],
				ClassID:    class_ids[j],
				TrackID:    -1,
			})
		}
	}

	return detections, nil
}

func getOutputLayerNames(net *gocv.Net) []string {
	var output_layer_names []string
	for _, i := range net.GetUnconnectedOutLayers() {
		layer := net.GetLayer(i)
		name := layer.GetName()
		if name != "_input" {
			output_layer_names = append(output_layer_names, name)
		}
	}
	return output_layer_names
}
