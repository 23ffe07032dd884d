package opsfiles

import (
	"github.com/rmartelo/freightops-backend/pkg/db/models"
)

// ProjectOpsFile flattens a fully loaded aggregate into its public view.
// Pure transform: callers are responsible for preloading every relation.
func ProjectOpsFile(file *models.OpsFile) OpsFileView {
	view := OpsFileView{
		OpID: file.OpID,
		Client: ClientRef{
			ClientID: file.Client.ClientID,
			Name:     file.Client.Name,
			TaxID:    file.Client.TaxID,
		},
		Status: StatusView{
			StatusID:   file.Status.StatusID,
			StatusName: file.Status.StatusName,
		},

		OpType:              file.OpType,
		OriginLocation:      file.OriginLocation,
		DestinationLocation: file.DestinationLocation,

		EstimatedTimeDeparture: file.EstimatedTimeDeparture,
		ActualTimeDeparture:    file.ActualTimeDeparture,
		EstimatedTimeArrival:   file.EstimatedTimeArrival,
		ActualTimeArrival:      file.ActualTimeArrival,

		CargoDescription: file.CargoDescription,
		GrossWeightValue: file.GrossWeightValue,
		GrossWeightUnit:  file.GrossWeightUnit,
		VolumeValue:      file.VolumeValue,
		VolumeUnit:       file.VolumeUnit,

		MasterTransportDoc: file.MasterTransportDoc,
		HouseTransportDoc:  file.HouseTransportDoc,
		Incoterm:           file.Incoterm,
		Modality:           file.Modality,
		Voyage:             file.Voyage,

		Partners:  make([]PartnerRef, 0, len(file.Partners)),
		Agents:    make([]AgentRef, 0, len(file.Agents)),
		Comments:  make([]CommentView, 0, len(file.Comments)),
		Packaging: make([]PackageView, 0, len(file.Packages)),

		CreatedAt: file.CreatedAt,
		UpdatedAt: file.UpdatedAt,
	}

	if file.Carrier != nil {
		view.Carrier = &CarrierRef{
			CarrierID: file.Carrier.CarrierID,
			Name:      file.Carrier.Name,
			Type:      file.Carrier.Type,
		}
	}
	view.Creator = projectUser(file.Creator)
	view.Assignee = projectUser(file.Assignee)
	view.OriginCountry = projectCountry(file.OriginCountry)
	view.DestinationCountry = projectCountry(file.DestinationCountry)

	for _, partner := range file.Partners {
		view.Partners = append(view.Partners, PartnerRef{
			PartnerID: partner.PartnerID,
			Name:      partner.Name,
			TaxID:     partner.TaxID,
		})
	}
	for _, agent := range file.Agents {
		view.Agents = append(view.Agents, AgentRef{
			AgentID: agent.AgentID,
			Name:    agent.Name,
		})
	}
	for i := range file.Comments {
		view.Comments = append(view.Comments, ProjectComment(&file.Comments[i]))
	}
	for i := range file.Packages {
		view.Packaging = append(view.Packaging, ProjectPackage(&file.Packages[i]))
	}

	return view
}

// ProjectComment maps a comment row to its public shape.
func ProjectComment(comment *models.OpsFileComment) CommentView {
	return CommentView{
		CommentID: comment.CommentID,
		OpID:      comment.OpID,
		Author:    projectUser(comment.Author),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

// ProjectPackage maps a packaging row to its public shape.
func ProjectPackage(pkg *models.CargoPackage) PackageView {
	return PackageView{
		PackageID: pkg.PackageID,
		OpID:      pkg.OpID,
		Quantity:  pkg.Quantity,
		Units:     pkg.Units,
		CreatedAt: pkg.CreatedAt,
		UpdatedAt: pkg.UpdatedAt,
	}
}

// ProjectStatus maps a status row to its public shape.
func ProjectStatus(status *models.OpsStatus) StatusView {
	return StatusView{
		StatusID:   status.StatusID,
		StatusName: status.StatusName,
	}
}

func projectUser(user *models.User) *UserRef {
	if user == nil {
		return nil
	}
	return &UserRef{
		UserID: user.UserID,
		Name:   user.Name,
		Email:  user.Email,
	}
}

func projectCountry(country *models.Country) *CountryView {
	if country == nil {
		return nil
	}
	return &CountryView{
		CountryID: country.CountryID,
		Name:      country.Name,
		ISO2Code:  country.ISO2Code,
		ISO3Code:  country.ISO3Code,
	}
}
